// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
)

// UnavailableValue is rendered for metrics the backend did not report.
const UnavailableValue = "N/A"

// Summary is the aggregate returned by GET /metrics/summary.
// Counts the backend omits decode as zero.
type Summary struct {
	TotalVPCs          int `json:"total_vpcs"`
	TotalNATGateways   int `json:"total_nat_gateways"`
	TotalLoadBalancers int `json:"total_load_balancers"`

	// AvgUtilization is a percentage in [0,100]; nil when absent.
	AvgUtilization *float64 `json:"avg_utilization,omitempty"`

	TotalBytesProcessed int64 `json:"total_bytes_processed,omitempty"`
}

// FormatCount renders a resource count.
func FormatCount(n int) string {
	return strconv.Itoa(n)
}

// FormatUtilization renders a utilization percentage with one decimal place.
// Absent and zero values render as N/A.
func FormatUtilization(u *float64) string {
	if u == nil || *u == 0 {
		return UnavailableValue
	}
	return formatTenths(*u) + "%"
}

// formatTenths renders v with one decimal. Exact halfway values round away
// from zero; %.1f alone would round them to even.
func formatTenths(v float64) string {
	const prec = 128
	x := new(big.Float).SetPrec(prec).SetFloat64(math.Abs(v))
	x.Mul(x, new(big.Float).SetPrec(prec).SetInt64(10))
	whole, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(prec).Sub(x, new(big.Float).SetPrec(prec).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return fmt.Sprintf("%.1f", v)
	}
	rounded := float64(whole.Int64()+1) / 10
	return fmt.Sprintf("%.1f", math.Copysign(rounded, v))
}

// FormatBytes renders a byte total in SI units, or N/A when nothing was reported.
func FormatBytes(n int64) string {
	if n <= 0 {
		return UnavailableValue
	}
	return humanize.Bytes(uint64(n))
}

// Float64 returns a pointer to v; handy for building summaries.
func Float64(v float64) *float64 {
	return &v
}
