package release

// TotalSteps is the number of user-visible steps of a release.
const TotalSteps = 5

// Step identifies a user-visible step of a release.
type Step struct {
	Number int
	Icon   string
	Title  string
}

var (
	StepAnalyse = Step{1, "🔍", "Analysing project"}
	StepWrite   = Step{2, "📝", "Writing version to manifest(s)"}
	StepCommit  = Step{3, "📋", "git commit for manifest(s)"}
	StepTag     = Step{4, "🏷️", "Add git tag for version"}
	StepPush    = Step{5, "🚚", "git push for manifest(s) and tag"}
)

// Reporter receives progress output.
type Reporter interface {
	// Begin announces a step.
	Begin(step Step)
	// Detail reports a line of information inside the current step.
	Detail(format string, args ...any)
	// End marks the step as done.
	End(step Step)
}

type nopReporter struct{}

func (nopReporter) Begin(Step)            {}
func (nopReporter) Detail(string, ...any) {}
func (nopReporter) End(Step)              {}

// NopReporter discards progress output.
var NopReporter Reporter = nopReporter{}
