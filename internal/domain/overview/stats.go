package overview

import "github.com/okian/netmon/internal/domain/model"

// Stat is one card in the overview stats grid.
type Stat struct {
	Label string
	Icon  string
	Value string
}

// Stats returns the four overview cards. Counts default to 0 and utilization
// to N/A when there is no summary.
func (s State) Stats() []Stat {
	var sum model.Summary
	if s.Summary != nil {
		sum = *s.Summary
	}
	return []Stat{
		{Label: "Total VPCs", Icon: "🏗️", Value: model.FormatCount(sum.TotalVPCs)},
		{Label: "NAT Gateways", Icon: "🚪", Value: model.FormatCount(sum.TotalNATGateways)},
		{Label: "Load Balancers", Icon: "⚖️", Value: model.FormatCount(sum.TotalLoadBalancers)},
		{Label: "Avg Utilization", Icon: "📈", Value: model.FormatUtilization(sum.AvgUtilization)},
	}
}

// BytesProcessed renders the summary's traffic total.
func (s State) BytesProcessed() string {
	if s.Summary == nil {
		return model.UnavailableValue
	}
	return model.FormatBytes(s.Summary.TotalBytesProcessed)
}
