// Package export renders evaluated scan cycles as spreadsheet reports,
// either a local XLSX workbook or a Google Sheets document.
package export

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/argentix/silverwatch/internal/domain"
)

// Row is one report line built from an Evaluated record.
type Row struct {
	Flag       string // "HIT", "PROS", "HIT+PROS" or empty
	Title      string
	URL        string
	TotalPrice float64
	Bids       int
	TimeLeft   string

	Quantity   int
	OzPerCoin  float64
	MeltValue  float64
	MeltPayout float64
	MeltRecMax float64
	MeltMargin float64

	Override     string
	FMVFloor     any // float64 or nil
	FMVSource    string
	DealerValue  any // float64 or nil
	DealerMargin any // float64 or nil
	Score        int
	ScoreReasons string
}

// ReportWriter writes report rows to a spreadsheet destination.
type ReportWriter interface {
	Write(ctx context.Context, rows []Row) error
}

var header = []string{
	"Flag", "Title", "URL", "Total", "Bids", "Time Left",
	"Qty", "Oz/Coin", "Melt Value", "Melt Payout", "Melt Rec Max", "Melt Margin %",
	"Override", "FMV Floor", "FMV Source", "Dealer Value", "Dealer Margin %",
	"Score", "Score Reasons",
}

// BuildRows converts evaluated records to report rows, preserving the
// evaluation order.
func BuildRows(evaluated []domain.Evaluated) []Row {
	return lo.Map(evaluated, func(ev domain.Evaluated, _ int) Row {
		row := Row{
			Flag:       flag(ev),
			Title:      ev.Listing.Title,
			URL:        ev.Listing.URL,
			TotalPrice: ev.Listing.TotalPrice,
			Bids:       ev.Listing.Bids,
			TimeLeft:   ev.Listing.TimeLeft,
			Quantity:   ev.Melt.Quantity,
			OzPerCoin:  ev.Melt.OzPerCoin,
			MeltValue:  ev.Melt.MeltValue,
			MeltPayout: ev.Melt.MeltPayout,
			MeltRecMax: ev.Melt.RecMaxTotal,
			MeltMargin: ev.Melt.MarginPct,
		}

		if n := ev.Numismatic; n != nil {
			row.Override = n.Override
			row.FMVFloor = ptrFloat(n.FMVFloor)
			row.FMVSource = n.FMVSource
			row.DealerValue = ptrFloat(n.DealerValue)
			row.DealerMargin = ptrFloat(n.DealerMarginPct)
			row.Score = n.Score
			row.ScoreReasons = strings.Join(n.ScoreReasons, ", ")
		}
		return row
	})
}

func flag(ev domain.Evaluated) string {
	switch {
	case ev.IsHit && ev.IsProspect:
		return "HIT+PROS"
	case ev.IsHit:
		return "HIT"
	case ev.IsProspect:
		return "PROS"
	default:
		return ""
	}
}

// cells flattens a row for spreadsheet APIs, header order.
func cells(row Row) []any {
	return []any{
		row.Flag, row.Title, row.URL, row.TotalPrice, row.Bids, row.TimeLeft,
		row.Quantity, row.OzPerCoin, row.MeltValue, row.MeltPayout,
		row.MeltRecMax, row.MeltMargin,
		row.Override, row.FMVFloor, row.FMVSource,
		row.DealerValue, row.DealerMargin,
		row.Score, row.ScoreReasons,
	}
}

func ptrFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
