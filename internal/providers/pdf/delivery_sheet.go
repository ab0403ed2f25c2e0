package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// DeliverySheet is the printable list of one chef's orders for a date and moment.
type DeliverySheet struct {
	ChefName string
	Date     string
	Moment   string
	Lines    []DeliveryLine
}

type DeliveryLine struct {
	Client    string
	Matricule string
	Telephone string
	Plat      string
	Adresse   string
	Statut    string
}

func (p *PDFProvider) GenerateDeliverySheet(ctx context.Context, sheet DeliverySheet) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Feuille de livraison", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(16,
		col.New(6).Add(
			text.New("Chef : "+sheet.ChefName, props.Text{Top: 0}),
			text.New("Date : "+sheet.Date, props.Text{Top: 5}),
			text.New("Service : "+sheet.Moment, props.Text{Top: 10}),
		),
		text.NewCol(6, fmt.Sprintf("%d repas", len(sheet.Lines)), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	header := props.Text{Style: fontstyle.Bold, Size: 9}
	m.AddRow(8,
		text.NewCol(3, "Client", header),
		text.NewCol(2, "Téléphone", header),
		text.NewCol(3, "Plat", header),
		text.NewCol(3, "Point de retrait", header),
		text.NewCol(1, "Statut", header),
	)

	cell := props.Text{Size: 8}
	for _, line := range sheet.Lines {
		m.AddRow(12,
			col.New(3).Add(
				text.New(line.Client, cell),
				text.New(line.Matricule, props.Text{Size: 7, Top: 4}),
			),
			text.NewCol(2, line.Telephone, cell),
			text.NewCol(3, line.Plat, cell),
			text.NewCol(3, line.Adresse, cell),
			text.NewCol(1, line.Statut, cell),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
