package shared

import "github.com/rohanthewiz/element"

// Footer is stateless.
type Footer struct{}

func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "section", "style", "color:var(--muted);font-size:.85rem").R(
		b.P().T("Konvy &copy; 2026. Accounts are delivered with full access."),
	)
	return nil
}
