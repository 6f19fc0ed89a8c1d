package services

import (
	"organ-transport-service/internal/domain"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

var riskOrder = map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

// Durations at or beyond this mark raise the time risk.
const timeRiskThresholdMin = 240

type RiskAssessment struct {
	TimeRisk    RiskLevel `json:"time_risk"`
	WeatherRisk RiskLevel `json:"weather_risk"`
	TrafficRisk RiskLevel `json:"traffic_risk"`
	OverallRisk RiskLevel `json:"overall_risk"`
}

type TransportReport struct {
	TransportID         string         `json:"transport_id"`
	OrganType           string         `json:"organ_type"`
	EfficiencyScore     int            `json:"efficiency_score"`
	RiskAssessment      RiskAssessment `json:"risk_assessment"`
	Recommendations     []string       `json:"recommendations"`
	EmergencyProcedures []string       `json:"emergency_procedures"`
}

var standardRecommendations = []string{
	"Verify cold-chain container temperature before departure and at each checkpoint",
	"Confirm GPS check-in every 15 minutes while in transit",
	"Notify the receiving transplant team 30 minutes before arrival",
	"Keep chain-of-custody documentation with the container at all times",
}

var emergencyProcedures = []string{
	"On vehicle failure, dispatch the nearest available backup vehicle immediately",
	"On temperature excursion, contact the receiving facility for viability guidance",
	"On route blockage, reroute via the nearest registered checkpoint",
	"Escalate to the transplant coordinator if the viability window drops below one hour",
}

// BuildReport scores a plan's efficiency and assembles the risk assessment
// and operational checklists for the transport summary.
func BuildReport(plan domain.TransportPlan) TransportReport {
	return TransportReport{
		TransportID:         plan.TransportID,
		OrganType:           plan.OrganType,
		EfficiencyScore:     efficiencyScore(plan.Route.DurationMin),
		RiskAssessment:      assessRisk(plan.Route.DurationMin),
		Recommendations:     standardRecommendations,
		EmergencyProcedures: emergencyProcedures,
	}
}

// efficiencyScore penalizes long routes: ten minutes of travel costs one
// point off a 100-point baseline, floored at zero.
func efficiencyScore(durationMin int) int {
	score := 100 - durationMin/10
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// assessRisk derives the time component from route duration; weather and
// traffic stay fixed placeholders until live feeds exist. The overall level
// is the worst component.
func assessRisk(durationMin int) RiskAssessment {
	timeRisk := RiskLow
	if durationMin >= timeRiskThresholdMin {
		timeRisk = RiskMedium
	}

	a := RiskAssessment{
		TimeRisk:    timeRisk,
		WeatherRisk: RiskLow,
		TrafficRisk: RiskMedium,
	}
	a.OverallRisk = maxRisk(a.TimeRisk, a.WeatherRisk, a.TrafficRisk)
	return a
}

func maxRisk(levels ...RiskLevel) RiskLevel {
	worst := RiskLow
	for _, l := range levels {
		if riskOrder[l] > riskOrder[worst] {
			worst = l
		}
	}
	return worst
}
