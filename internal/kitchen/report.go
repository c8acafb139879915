package kitchen

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ItemSales aggregates the units sold of one menu item
type ItemSales struct {
	MenuItemID int64           `json:"menuItemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// Report summarizes the tickets on the board
type Report struct {
	Tickets       int                  `json:"tickets"`
	Revenue       decimal.Decimal      `json:"revenue"`
	AverageTicket decimal.Decimal      `json:"averageTicket"`
	ByStatus      map[TicketStatus]int `json:"byStatus"`
	TopItems      []ItemSales          `json:"topItems"`
}

// Report builds the sales summary. Cancelled tickets are only counted in ByStatus.
func (b *Board) Report() Report {
	b.mu.RLock()
	defer b.mu.RUnlock()

	report := Report{
		Revenue:       decimal.Zero,
		AverageTicket: decimal.Zero,
		ByStatus: map[TicketStatus]int{
			TicketPending:    0,
			TicketInProgress: 0,
			TicketCompleted:  0,
			TicketCancelled:  0,
		},
		TopItems: []ItemSales{},
	}

	sales := make(map[int64]*ItemSales)
	for _, ticket := range b.tickets {
		report.ByStatus[ticket.Status]++
		if ticket.Status == TicketCancelled {
			continue
		}

		report.Tickets++
		report.Revenue = report.Revenue.Add(ticket.Total)

		for _, item := range ticket.Items {
			s, ok := sales[item.MenuItemID]
			if !ok {
				s = &ItemSales{MenuItemID: item.MenuItemID, Name: item.Name, Revenue: decimal.Zero}
				sales[item.MenuItemID] = s
			}
			s.Quantity += item.Quantity
			s.Revenue = s.Revenue.Add(item.LineTotal)
		}
	}

	if report.Tickets > 0 {
		report.AverageTicket = report.Revenue.Div(decimal.NewFromInt(int64(report.Tickets)))
	}

	for _, s := range sales {
		report.TopItems = append(report.TopItems, *s)
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		a, c := report.TopItems[i], report.TopItems[j]
		if a.Quantity != c.Quantity {
			return a.Quantity > c.Quantity
		}
		return a.MenuItemID < c.MenuItemID
	})

	return report
}
