package model

// Feasibility classifies whether a savings goal's pace is achievable given
// the user's current monthly surplus.
type Feasibility string

// Feasibility constants.
const (
	Feasible          Feasibility = "Feasible"
	PartiallyFeasible Feasibility = "Partially Feasible"
	NotFeasible       Feasibility = "Not Feasible"
)

// MilestoneStatus classifies actual savings progress against plan.
type MilestoneStatus string

// Milestone status constants.
const (
	StatusOnTrack MilestoneStatus = "On Track"
	StatusAhead   MilestoneStatus = "Ahead"
	StatusBehind  MilestoneStatus = "Behind"
)

// Goal is a user-declared savings target.
type Goal struct {
	Purpose          string  `json:"purpose"`
	Amount           float64 `json:"amount"`
	TimePeriodMonths int     `json:"time_period_months"`
}

// Milestone is a time-indexed savings checkpoint with a cumulative target.
type Milestone struct {
	Month        int     `json:"month"`
	TargetAmount float64 `json:"target_amount"`
}

// GoalPlan is the computed savings plan for a goal. Plans are never mutated
// after planning; milestone adjustment supersedes a plan with a new
// AdjustedGoalPlan record instead.
type GoalPlan struct {
	Goal                    Goal        `json:"goal"`
	RequiredMonthlySaving   float64     `json:"required_monthly_saving"`
	EstimatedMonthlySurplus float64     `json:"estimated_monthly_surplus"`
	Feasibility             Feasibility `json:"feasibility"`
	Milestones              []Milestone `json:"milestones"`
	Recommendations         []string    `json:"recommendations"`
}

// AdjustedGoalPlan is a GoalPlan reissued after comparing actual savings to
// the milestone schedule. It carries the drift classification and possibly
// replaced recommendations.
type AdjustedGoalPlan struct {
	GoalPlan
	MilestoneStatus MilestoneStatus `json:"milestone_status"`
}
