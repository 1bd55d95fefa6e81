package models

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/xuri/excelize/v2"
)

const purchasesSheet = "Purchased Accounts"

// PurchasesWorkbook renders purchased accounts as an .xlsx file, one row per
// account with the same credential fields the carousel shows.
func PurchasesWorkbook(accounts []PurchasedAccount) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", purchasesSheet); err != nil {
		return nil, serr.Wrap(err, "failed to name purchases sheet")
	}

	headers := []string{"#", "Purchased At", "Item ID", "Email Login", "Email Site", "Epic Login"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, serr.Wrap(err, "failed to resolve header cell")
		}
		if err := f.SetCellValue(purchasesSheet, cell, h); err != nil {
			return nil, serr.Wrap(err, "failed to write header")
		}
	}

	for i, acc := range accounts {
		cred := acc.Credentials()
		purchasedAt := ""
		if acc.Timestamp > 0 {
			purchasedAt = time.Unix(acc.Timestamp, 0).UTC().Format("2006-01-02 15:04")
		}

		row := []interface{}{i + 1, purchasedAt, acc.PurchaseResult.Item.ItemID,
			cred.EmailLogin, cred.EmailSite, cred.EpicLogin}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(purchasesSheet, cell, &row); err != nil {
			return nil, serr.Wrap(err, "failed to write purchase row")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, serr.Wrap(err, "failed to serialise workbook")
	}
	return buf.Bytes(), nil
}
