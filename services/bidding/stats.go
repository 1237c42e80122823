package bidding

import "freelancehub/models"

// Stats summarizes a freelancer's bidding history.
type Stats struct {
	AvgBid      float64 `json:"avgBid"`
	SuccessRate float64 `json:"successRate"` // Percent of bids accepted.
	TotalBids   int     `json:"totalBids"`
}

// ComputeStats derives the stats from the full bid collection.
func ComputeStats(bids []models.Bid) Stats {
	if len(bids) == 0 {
		return Stats{}
	}
	var sum float64
	accepted := 0
	for _, b := range bids {
		sum += b.Amount
		if b.Status == models.BidAccepted {
			accepted++
		}
	}
	n := float64(len(bids))
	return Stats{
		AvgBid:      sum / n,
		SuccessRate: float64(accepted) / n * 100,
		TotalBids:   len(bids),
	}
}

// tabStatus maps a listing tab to the status it shows. ok is false for an
// unknown tab; an empty status means every bid.
func tabStatus(tab string) (models.BidStatus, bool) {
	switch tab {
	case "", "all":
		return "", true
	case "active", "pending":
		return models.BidPending, true
	case "accepted":
		return models.BidAccepted, true
	case "rejected":
		return models.BidRejected, true
	case "withdrawn":
		return models.BidWithdrawn, true
	}
	return "", false
}
