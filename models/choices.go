package models

import (
	"github.com/goccy/go-json"
)

// Choice is one (value, label) pair of a closed enumeration. It encodes as a
// two-element JSON array so clients can build select options directly.
type Choice struct {
	Value string
	Label string
}

func (c Choice) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Value, c.Label})
}

type FacilityType string

const (
	FacilityTerminal   FacilityType = "terminal"
	FacilityRefinery   FacilityType = "refinery"
	FacilityProduction FacilityType = "production"
	FacilityOther      FacilityType = "other"
)

var FacilityTypeChoices = []Choice{
	{string(FacilityTerminal), "Terminal"},
	{string(FacilityRefinery), "Refinery"},
	{string(FacilityProduction), "Production"},
	{string(FacilityOther), "Other"},
}

func (f FacilityType) Valid() bool { return hasChoice(FacilityTypeChoices, string(f)) }

type Foundation string

const (
	FoundationConcrete Foundation = "concrete"
	FoundationEarthen  Foundation = "earthen"
	FoundationPiles    Foundation = "piles"
	FoundationRingwall Foundation = "ringwall"
	FoundationOther    Foundation = "other"
)

var FoundationChoices = []Choice{
	{string(FoundationConcrete), "Concrete"},
	{string(FoundationEarthen), "Earthen"},
	{string(FoundationPiles), "Pile supported"},
	{string(FoundationRingwall), "Ringwall"},
	{string(FoundationOther), "Other"},
}

func (f Foundation) Valid() bool { return hasChoice(FoundationChoices, string(f)) }

type AccessStructure string

const (
	AccessStair   AccessStructure = "stair"
	AccessLadder  AccessStructure = "ladder"
	AccessCatwalk AccessStructure = "catwalk"
	AccessOther   AccessStructure = "other"
)

var AccessStructureChoices = []Choice{
	{string(AccessStair), "Stair"},
	{string(AccessLadder), "Ladder"},
	{string(AccessCatwalk), "Catwalk"},
	{string(AccessOther), "Other"},
}

func (a AccessStructure) Valid() bool { return hasChoice(AccessStructureChoices, string(a)) }

// UTCategory groups ultrasonic thickness readings by tank component.
type UTCategory string

const (
	UTBottom       UTCategory = "bottom"
	UTAppurtenance UTCategory = "appurtenance"
	UTRoof         UTCategory = "roof"
	UTShell        UTCategory = "shell"
)

var UTCategoryChoices = []Choice{
	{string(UTBottom), "Bottom"},
	{string(UTAppurtenance), "Appurtenance"},
	{string(UTRoof), "Roof"},
	{string(UTShell), "Shell"},
}

func (c UTCategory) Valid() bool { return hasChoice(UTCategoryChoices, string(c)) }

type CommentType string

const (
	CommentPerform  CommentType = "perform"
	CommentConsider CommentType = "consider"
	CommentMonitor  CommentType = "monitor"
)

var CommentTypeChoices = []Choice{
	{string(CommentPerform), "Perform"},
	{string(CommentConsider), "Consider"},
	{string(CommentMonitor), "Monitor"},
}

func (c CommentType) Valid() bool { return hasChoice(CommentTypeChoices, string(c)) }

type VisualArea string

const (
	AreaShell           VisualArea = "shell"
	AreaBottomExtension VisualArea = "bottom_extension"
	AreaRoof            VisualArea = "roof"
	AreaNozzle          VisualArea = "nozzle"
	AreaAccessStructure VisualArea = "access_structure"
	AreaVenting         VisualArea = "venting"
	AreaCoating         VisualArea = "coating"
	AreaOther           VisualArea = "other"
)

var VisualAreaChoices = []Choice{
	{string(AreaShell), "Shell"},
	{string(AreaBottomExtension), "Bottom extension"},
	{string(AreaRoof), "Roof"},
	{string(AreaNozzle), "Nozzle"},
	{string(AreaAccessStructure), "Access structure"},
	{string(AreaVenting), "Venting"},
	{string(AreaCoating), "Coating"},
	{string(AreaOther), "Other"},
}

func (a VisualArea) Valid() bool { return hasChoice(VisualAreaChoices, string(a)) }

// GoalKey identifies one of the eight inspection goal categories.
type GoalKey string

const (
	Goal1 GoalKey = "goal_1"
	Goal2 GoalKey = "goal_2"
	Goal3 GoalKey = "goal_3"
	Goal4 GoalKey = "goal_4"
	Goal5 GoalKey = "goal_5"
	Goal6 GoalKey = "goal_6"
	Goal7 GoalKey = "goal_7"
	Goal8 GoalKey = "goal_8"
)

var GoalKeyChoices = []Choice{
	{string(Goal1), "Identify leak paths"},
	{string(Goal2), "Identify future leak risks"},
	{string(Goal3), "Foundation settlement"},
	{string(Goal4), "Access structure"},
	{string(Goal5), "Fixed roof"},
	{string(Goal6), "Floating roof"},
	{string(Goal7), "Venting"},
	{string(Goal8), "Coating"},
}

func (g GoalKey) Valid() bool { return hasChoice(GoalKeyChoices, string(g)) }

// Label returns the display label, or the raw key when it is not a known goal.
func (g GoalKey) Label() string { return labelFor(GoalKeyChoices, string(g)) }

// InspectionMethods is the checklist offered for every goal result.
var InspectionMethods = []string{
	"100% Visual Examination (VE) of bottom plates, corner weld, and bottom welds",
	"100% VE of base of tank, bottom extension, and shell",
	"Document with digital camera",
	"Ultrasonic Thickness Testing (UT)",
	"Note brittle-fracture concerns if applicable",
	"Document findings affecting structural or hydraulic integrity",
	"Survey of the shell for settlement",
	"Survey of fixed-roof supports for plumbness",
	"VE of shell for bulges or distortion",
	"Document potential findings affecting foundation or bottom integrity",
	"Thorough VE of access structure and appurtenances",
	"Thorough VE of roof and appurtenances",
	"UT readings of accessible roof plates",
	"VE of floating roof and appurtenances (if present)",
	"VE of existing venting system",
	"VE of coatings",
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func labelFor(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
