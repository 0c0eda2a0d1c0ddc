package services

import (
	"sort"
	"time"

	"helpdesk_app_go/models"
)

// MonthlyWindow is the number of calendar months covered by the monthly
// ticket series (the current month plus the six preceding ones).
const MonthlyWindow = 7

// TopCustomerLimit caps the top-customers report
const TopCustomerLimit = 5

// MonthlyBucket holds new/resolved ticket counts for one calendar month
type MonthlyBucket struct {
	Label    string `json:"name"`
	New      int    `json:"tickets"`
	Resolved int    `json:"resolved"`
}

// StatusCount holds the number of tickets in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// AgentStats holds per-agent workload counts
type AgentStats struct {
	Name     string `json:"name"`
	Assigned int    `json:"assigned"`
	Resolved int    `json:"resolved"`
}

// CustomerStats holds per-customer ticket volume
type CustomerStats struct {
	Name    string `json:"name"`
	Tickets int    `json:"tickets"`
}

// TicketReport is the full report computed over one date range
type TicketReport struct {
	TotalTickets    int             `json:"total_tickets"`
	ResolvedTickets int             `json:"resolved_tickets"`
	ResolutionRate  float64         `json:"resolution_rate"`
	Monthly         []MonthlyBucket `json:"monthly"`
	StatusCounts    []StatusCount   `json:"status_distribution"`
	Agents          []AgentStats    `json:"agent_performance"`
	TopCustomers    []CustomerStats `json:"top_customers"`
}

// MonthlySeries buckets tickets into the MonthlyWindow calendar months ending
// at now's month, oldest first. Tickets created outside the window are
// dropped from this view only. Input order does not affect the output.
func MonthlySeries(now time.Time, tickets []models.Ticket) []MonthlyBucket {
	type monthKey struct {
		year  int
		month time.Month
	}

	buckets := make([]MonthlyBucket, 0, MonthlyWindow)
	index := make(map[monthKey]int, MonthlyWindow)

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := MonthlyWindow - 1; i >= 0; i-- {
		m := firstOfMonth.AddDate(0, -i, 0)
		index[monthKey{m.Year(), m.Month()}] = len(buckets)
		buckets = append(buckets, MonthlyBucket{Label: m.Format("Jan")})
	}

	for _, t := range tickets {
		created := t.CreatedAt.In(now.Location())
		i, ok := index[monthKey{created.Year(), created.Month()}]
		if !ok {
			continue
		}
		buckets[i].New++
		if t.Status == models.TicketStatusResolved {
			buckets[i].Resolved++
		}
	}

	return buckets
}

// StatusDistribution counts tickets per known status, preserving the
// canonical status ordering. Unrecognized statuses are ignored.
func StatusDistribution(tickets []models.Ticket) []StatusCount {
	counts := make([]StatusCount, len(models.TicketStatuses))
	index := make(map[string]int, len(models.TicketStatuses))
	for i, status := range models.TicketStatuses {
		counts[i] = StatusCount{Status: status}
		index[status] = i
	}

	for _, t := range tickets {
		if i, ok := index[t.Status]; ok {
			counts[i].Count++
		}
	}

	return counts
}

// AgentPerformance groups tickets by assignee display name. Tickets without
// an assignee fall into the "Unassigned" group. Output is sorted descending
// by assigned count; ties keep first-encountered order.
func AgentPerformance(tickets []models.Ticket) []AgentStats {
	stats := make([]AgentStats, 0)
	index := make(map[string]int)

	for _, t := range tickets {
		name := "Unassigned"
		if t.Assignee != nil && t.Assignee.FullName != "" {
			name = t.Assignee.FullName
		}

		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, AgentStats{Name: name})
		}
		stats[i].Assigned++
		if t.Status == models.TicketStatusResolved {
			stats[i].Resolved++
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Assigned > stats[b].Assigned
	})

	return stats
}

// TopCustomers groups tickets by requester display name ("Unknown" when the
// requester has no name), sorted descending by count and truncated to
// TopCustomerLimit entries. Ties keep first-encountered order.
func TopCustomers(tickets []models.Ticket) []CustomerStats {
	stats := make([]CustomerStats, 0)
	index := make(map[string]int)

	for _, t := range tickets {
		name := "Unknown"
		if t.Requester != nil && t.Requester.FullName != "" {
			name = t.Requester.FullName
		}

		i, ok := index[name]
		if !ok {
			i = len(stats)
			index[name] = i
			stats = append(stats, CustomerStats{Name: name})
		}
		stats[i].Tickets++
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Tickets > stats[b].Tickets
	})

	if len(stats) > TopCustomerLimit {
		stats = stats[:TopCustomerLimit]
	}

	return stats
}

// Summarize computes the scalar report metrics. The resolution rate is 0
// when there are no tickets.
func Summarize(tickets []models.Ticket) (total, resolved int, resolutionRate float64) {
	total = len(tickets)
	for _, t := range tickets {
		if t.Status == models.TicketStatusResolved {
			resolved++
		}
	}
	if total > 0 {
		resolutionRate = float64(resolved) / float64(total)
	}
	return total, resolved, resolutionRate
}

// BuildTicketReport computes the full report for a ticket list that the
// caller has already filtered by date range. It performs no I/O and does
// not mutate its input.
func BuildTicketReport(now time.Time, tickets []models.Ticket) TicketReport {
	total, resolved, rate := Summarize(tickets)
	return TicketReport{
		TotalTickets:    total,
		ResolvedTickets: resolved,
		ResolutionRate:  rate,
		Monthly:         MonthlySeries(now, tickets),
		StatusCounts:    StatusDistribution(tickets),
		Agents:          AgentPerformance(tickets),
		TopCustomers:    TopCustomers(tickets),
	}
}
