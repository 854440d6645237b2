package spreadsheet

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"
)

func defaultStyle() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Family: "Calibri",
			Size:   11,
		},
	}
}

func amountFormat() *excelize.Style {
	format := "#,##0;-#,##0;0"
	return &excelize.Style{
		CustomNumFmt: &format,
	}
}

func dateFormat() *excelize.Style {
	format := "yyyy-mm-dd"
	return &excelize.Style{
		CustomNumFmt: &format,
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func headerFill() *excelize.Style {
	return &excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D9E1F2"},
			Pattern: 1,
		},
	}
}

func bottomBorder() *excelize.Style {
	return &excelize.Style{
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	}
}

func topBorder() *excelize.Style {
	return &excelize.Style{
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 2},
		},
	}
}

// mergeStyles folds the later styles into the first, later ones winning.
func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}

// styles caches style ids per workbook.
type styles struct {
	header int
	text   int
	amount int
	date   int
	total  int
	label  int
}

func newStyles(xlsx *excelize.File) (*styles, error) {
	var s styles
	var err error
	if s.header, err = xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), headerFill(), bottomBorder())); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if s.text, err = xlsx.NewStyle(defaultStyle()); err != nil {
		return nil, fmt.Errorf("text style: %w", err)
	}
	if s.amount, err = xlsx.NewStyle(mergeStyles(defaultStyle(), amountFormat())); err != nil {
		return nil, fmt.Errorf("amount style: %w", err)
	}
	if s.date, err = xlsx.NewStyle(mergeStyles(defaultStyle(), dateFormat())); err != nil {
		return nil, fmt.Errorf("date style: %w", err)
	}
	if s.total, err = xlsx.NewStyle(mergeStyles(defaultStyle(), amountFormat(), fontBold(), topBorder())); err != nil {
		return nil, fmt.Errorf("total style: %w", err)
	}
	if s.label, err = xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), topBorder())); err != nil {
		return nil, fmt.Errorf("label style: %w", err)
	}
	return &s, nil
}
