package dashboard

import (
	"fmt"
	"html"
	"strconv"

	"konvyshop/models"
	"konvyshop/preview"

	"github.com/rohanthewiz/element"
)

// ProcessingOverlay blocks the page while a purchase is in flight. htmx
// shows it through hx-indicator on the buy buttons.
type ProcessingOverlay struct{}

func (ProcessingOverlay) Render(b *element.Builder) (x any) {
	b.Div("id", "processing-overlay", "class", "processing-overlay").R(
		b.DivClass("processing-content").R(
			b.DivClass("processing-spinner").R(),
			b.DivClass("processing-title").T("Processing Purchase..."),
			b.DivClass("processing-message").R(
				b.T("Please wait while we secure your account."),
				b.Br(),
				b.T("This usually takes 5-15 seconds."),
			),
			b.DivClass("processing-warning").R(
				b.T("⚠️ DO NOT refresh or close this page!"),
				b.Br(),
				b.T("Doing so may cause your purchase to fail."),
			),
		),
	)
	return
}

func modalFrame(b *element.Builder, title string, body func()) any {
	return b.Div("class", "modal-overlay", "id", "modal-overlay", "onclick", "konvy.closeModal()").R(
		b.Div("class", "modal", "onclick", "event.stopPropagation()").R(
			b.DivClass("modal-header").R(
				b.H2("class", "modal-title").T(html.EscapeString(title)),
				b.ButtonClass("modal-close", "type", "button", "onclick", "konvy.closeModal()").T("×"),
			),
			b.Div("class", "modal-body", "id", "modal-body").R(
				b.Wrap(body),
			),
		),
	)
}

// PreviewDialog asks which cosmetic category to preview.
type PreviewDialog struct {
	ItemID int64
}

func (d PreviewDialog) Render(b *element.Builder) (x any) {
	id := strconv.FormatInt(d.ItemID, 10)
	modalFrame(b, "Choose cosmetic type", func() {
		b.DivClass("cosmetic-type-grid").R(
			element.ForEach(models.CosmeticCategories, func(c models.CosmeticCategory) {
				b.Button("type", "button", "class", "action-btn secondary cosmetic-type-btn",
					"data-type", string(c),
					"hx-post", "/preview/"+id+"/start?category="+string(c),
					"hx-target", "#modal-root",
					"hx-swap", "innerHTML").T(c.Label())
			}),
		)
		b.Button("type", "button", "class", "action-btn secondary cosmetic-type-close",
			"onclick", "konvy.closeModal()").T("Cancel")
	})
	return
}

// PreviewModal shows a preview job. While the job runs it polls itself
// every 500ms; the finished modal carries no trigger so polling stops.
type PreviewModal struct {
	JobID    string
	Category models.CosmeticCategory
	Progress preview.Progress
	Result   preview.Result
	Done     bool
}

func (m PreviewModal) Render(b *element.Builder) (x any) {
	modalFrame(b, m.Category.ModalTitle(), func() {
		if !m.Done {
			b.Div("class", "preview-progress", "id", "skins-loader",
				"hx-get", "/jobs/"+m.JobID,
				"hx-trigger", "every 500ms",
				"hx-target", "#modal-root",
				"hx-swap", "innerHTML").R(
				b.DivClass("loading-spinner").R(),
				b.SpanClass("loader-text").T(m.progressText()),
			)
			return
		}

		if m.Result.Message != "" {
			b.DivClass("preview-progress loader-text").T(html.EscapeString(m.Result.Message))
			return
		}

		b.Div("class", "skins-grid", "id", "skins-grid").R(
			element.ForEach(m.Result.Tiles, func(t preview.Tile) {
				class := "skin-tile"
				if t.Broken {
					class += " broken"
				}
				b.DivClass(class).R(
					b.Img("src", html.EscapeString(t.Icon), "alt", html.EscapeString(t.Name), "loading", "lazy"),
					b.Div().T(html.EscapeString(t.Name)),
				)
			}),
		)
	})
	return
}

func (m PreviewModal) progressText() string {
	if m.Progress.Total == 0 {
		return "Loading..."
	}
	return fmt.Sprintf("Loading %d / %d", m.Progress.Loaded, m.Progress.Total)
}
