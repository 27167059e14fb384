// ABOUTME: Progressive-refinement state machine for one pairwise comparison
// ABOUTME: Converts coarse-to-fine grade choices into a ratio, reliability, and scale type

package engine

import (
	"fmt"
	"math"

	"github.com/mauromedda/prefscale-go/internal/scale"
)

// Level identifies the refinement depth of a comparison.
type Level int

const (
	LevelInitial Level = iota
	LevelCoarse
	LevelMedium
	LevelFine
	LevelDone
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelInitial:
		return "initial"
	case LevelCoarse:
		return "coarse"
	case LevelMedium:
		return "medium"
	case LevelFine:
		return "fine"
	case LevelDone:
		return "done"
	default:
		return fmt.Sprintf("engine.Level(%d)", int(l))
	}
}

// Object identifies which alternative is favored.
type Object int

const (
	ObjectNone Object = iota
	ObjectA
	ObjectB
)

// String returns the object name.
func (o Object) String() string {
	switch o {
	case ObjectA:
		return "A"
	case ObjectB:
		return "B"
	default:
		return "none"
	}
}

// Branch identifies which coarse anchor opened the medium level.
type Branch int

const (
	BranchNone Branch = iota
	BranchWeak
	BranchStrong
	BranchExtreme
)

// String returns the branch name.
func (b Branch) String() string {
	switch b {
	case BranchWeak:
		return "weak"
	case BranchStrong:
		return "strong"
	case BranchExtreme:
		return "extreme"
	default:
		return "none"
	}
}

// anchor returns the coarse grade that opens the branch.
func (b Branch) anchor() float64 {
	switch b {
	case BranchWeak:
		return 2
	case BranchStrong:
		return 5
	case BranchExtreme:
		return 9
	default:
		return 0
	}
}

// band returns the cardinal sub-range covered by the branch cluster. The
// three bands tile the full cardinal axis [1.5, 9.5].
func (b Branch) band() (lo, hi float64) {
	switch b {
	case BranchWeak:
		return 1.5, 4.5
	case BranchStrong:
		return 4.5, 7.5
	case BranchExtreme:
		return 7.5, 9.5
	default:
		return 0, 0
	}
}

// maxFineCount returns the largest fine gradation count for the branch. The
// extreme band reaches past grade 9 on the cardinal axis, so its count is
// capped where midpoint clamping would stop producing distinct grades.
func (b Branch) maxFineCount() int {
	if b == BranchExtreme {
		return 5
	}
	return 8
}

// PanelKind distinguishes directly-confirmable panels from grouped panels
// that expand into the fine level.
type PanelKind int

const (
	PanelActive PanelKind = iota
	PanelGrouped
)

// Panel is one selectable grade at the current level.
type Panel struct {
	Grade float64
	Kind  PanelKind
}

// Snapshot is the observable state handed to the presentation layer after
// every action.
type Snapshot struct {
	Level        Level
	Branch       Branch
	Panels       []Panel
	PendingGrade float64 // 0 until a grade is chosen
	Reliability  float64
	Scale        scale.Type
	ObjectA      string
	ObjectB      string
	Selected     Object
	FineCount    int // 0 outside the fine level
}

// Pattern returns the ordered grade labels of the current panels.
func (s Snapshot) Pattern() []float64 {
	out := make([]float64, len(s.Panels))
	for i, p := range s.Panels {
		out[i] = p.Grade
	}
	return out
}

// Result is the terminal outcome of a comparison.
type Result struct {
	Ratio       float64
	Reliability float64
	Scale       scale.Type
}

// Reliability milestones for the refinement depths; the fine level uses its
// gradation count instead.
const (
	reliabilityNone      = 0.0
	reliabilityDirection = 1.0
	reliabilityCoarse    = 3.0
)

// defaultFineCount is the gradation count when a grouped panel first expands.
const defaultFineCount = 5

// gradeEpsilon tolerates float noise when matching panel grades.
const gradeEpsilon = 1e-6

// Comparison is the state machine for a single pairwise comparison. A fresh
// value is created per ordered pair of alternatives and discarded once a
// terminal action produces a Result. Not safe for concurrent use; each
// comparison belongs to one interaction loop.
type Comparison struct {
	labelA, labelB string

	level       Level
	branch      Branch
	panels      []Panel
	pending     float64
	rel         float64
	scaleType   scale.Type
	selected    Object
	fineCount   int
	defaultFine int

	result Result
}

// New begins a comparison session between two labeled alternatives. The
// scale type defaults to Integer and may be changed any time before a
// terminal action.
func New(labelA, labelB string) *Comparison {
	return &Comparison{
		labelA:      labelA,
		labelB:      labelB,
		level:       LevelInitial,
		scaleType:   scale.Integer,
		defaultFine: defaultFineCount,
	}
}

// SetDefaultFineCount overrides the subdivision count used when a grouped
// panel first expands. Narrow branches still cap the effective count.
func (c *Comparison) SetDefaultFineCount(n int) error {
	if n < 2 || n > 8 {
		return fmt.Errorf("fine gradation count %d outside [2,8]", n)
	}
	c.defaultFine = n
	return nil
}

// Snapshot returns a copy of the observable state.
func (c *Comparison) Snapshot() Snapshot {
	panels := make([]Panel, len(c.panels))
	copy(panels, c.panels)
	return Snapshot{
		Level:        c.level,
		Branch:       c.branch,
		Panels:       panels,
		PendingGrade: c.pending,
		Reliability:  c.rel,
		Scale:        c.scaleType,
		ObjectA:      c.labelA,
		ObjectB:      c.labelB,
		Selected:     c.selected,
		FineCount:    c.fineCount,
	}
}

// Done reports whether a terminal action has been taken.
func (c *Comparison) Done() bool {
	return c.level == LevelDone
}

// Result returns the terminal tuple. Calling before a terminal action fails
// with NotReadyError.
func (c *Comparison) Result() (Result, error) {
	if c.level != LevelDone {
		return Result{}, &NotReadyError{}
	}
	return c.result, nil
}

// ChooseA declares the first alternative preferred and opens the coarse level.
func (c *Comparison) ChooseA() error {
	return c.choose(ObjectA)
}

// ChooseB declares the second alternative preferred and opens the coarse level.
func (c *Comparison) ChooseB() error {
	return c.choose(ObjectB)
}

func (c *Comparison) choose(obj Object) error {
	if c.level != LevelInitial {
		return &InvalidStateError{Op: "chooseObject", Level: c.level}
	}
	c.selected = obj
	c.rel = reliabilityDirection
	c.level = LevelCoarse
	c.panels = coarsePanels()
	return nil
}

// SwitchObject flips the favored alternative without losing refinement
// progress. Valid once a direction has been chosen.
func (c *Comparison) SwitchObject() error {
	if c.level == LevelInitial || c.level == LevelDone || c.selected == ObjectNone {
		return &InvalidStateError{Op: "switchObject", Level: c.level}
	}
	if c.selected == ObjectA {
		c.selected = ObjectB
	} else {
		c.selected = ObjectA
	}
	return nil
}

// NoPreference terminates the comparison with the neutral result (1, 0, none),
// regardless of refinement depth or any scale type chosen along the way.
func (c *Comparison) NoPreference() error {
	if c.level == LevelDone {
		return &InvalidStateError{Op: "noPreference", Level: c.level}
	}
	c.result = Result{Ratio: 1, Reliability: reliabilityNone, Scale: scale.None}
	c.level = LevelDone
	return nil
}

// Cancel abandons the comparison; identical in effect to NoPreference.
func (c *Comparison) Cancel() error {
	if c.level == LevelDone {
		return &InvalidStateError{Op: "cancel", Level: c.level}
	}
	return c.NoPreference()
}

// SetScaleType selects the transformation applied at confirmation. It never
// changes the refinement level and is valid at any depth before termination.
func (c *Comparison) SetScaleType(t scale.Type) error {
	if c.level == LevelDone {
		return &InvalidStateError{Op: "setScaleType", Level: c.level}
	}
	if !t.Valid() {
		return fmt.Errorf("scale type %v is not selectable", t)
	}
	c.scaleType = t
	return nil
}

// SelectGrade handles a panel click at the current level.
//
// Coarse: moves to the medium level on the branch opened by the anchor.
// Medium: an active panel confirms immediately; a grouped panel expands the
// branch cluster into the fine level. Fine: confirms the clicked subdivision.
func (c *Comparison) SelectGrade(g float64) error {
	switch c.level {
	case LevelCoarse:
		return c.selectCoarse(g)
	case LevelMedium:
		return c.selectMedium(g)
	case LevelFine:
		return c.selectFine(g)
	default:
		return &InvalidStateError{Op: "selectGrade", Level: c.level}
	}
}

func (c *Comparison) selectCoarse(g float64) error {
	i := findPanel(c.panels, g)
	if i < 0 {
		return &scale.InvalidGradeError{Grade: g, Reason: "not in the coarse pattern {2,5,9}"}
	}
	branch, err := branchFor(c.panels[i].Grade)
	if err != nil {
		return err
	}
	c.pending = c.panels[i].Grade
	c.rel = reliabilityCoarse
	c.branch = branch
	c.level = LevelMedium
	c.panels = mediumPanels(branch)
	return nil
}

func (c *Comparison) selectMedium(g float64) error {
	i := findPanel(c.panels, g)
	if i < 0 {
		return &scale.InvalidGradeError{Grade: g, Reason: "not in the current gradation pattern"}
	}
	p := c.panels[i]
	if p.Kind == PanelActive {
		c.pending = p.Grade
		return c.confirm()
	}
	// Grouped panel: expand the branch cluster into adjustable subdivisions.
	c.pending = p.Grade
	c.fineCount = min(c.defaultFine, c.branch.maxFineCount())
	c.rel = float64(c.fineCount)
	c.level = LevelFine
	c.panels = finePanels(c.branch, c.fineCount)
	return nil
}

func (c *Comparison) selectFine(g float64) error {
	i := findPanel(c.panels, g)
	if i < 0 {
		return &scale.InvalidGradeError{Grade: g, Reason: "not in the current subdivision"}
	}
	c.pending = c.panels[i].Grade
	c.rel = float64(c.fineCount)
	return c.confirm()
}

// IncreaseGradations adds one fine subdivision, saturating at the branch
// maximum. Reliability tracks the visible count.
func (c *Comparison) IncreaseGradations() error {
	if c.level != LevelFine {
		return &InvalidStateError{Op: "increaseGradations", Level: c.level}
	}
	if c.fineCount >= c.branch.maxFineCount() {
		return nil
	}
	c.setFineCount(c.fineCount + 1)
	return nil
}

// DecreaseGradations removes one fine subdivision, saturating at two.
func (c *Comparison) DecreaseGradations() error {
	if c.level != LevelFine {
		return &InvalidStateError{Op: "decreaseGradations", Level: c.level}
	}
	if c.fineCount <= 2 {
		return nil
	}
	c.setFineCount(c.fineCount - 1)
	return nil
}

func (c *Comparison) setFineCount(n int) {
	c.fineCount = n
	c.rel = float64(n)
	c.panels = finePanels(c.branch, n)
}

// Back rewinds one refinement level: fine to medium, medium to coarse, and
// coarse to the initial state (clearing the direction choice).
func (c *Comparison) Back() error {
	switch c.level {
	case LevelCoarse:
		c.level = LevelInitial
		c.panels = nil
		c.pending = 0
		c.rel = reliabilityNone
		c.selected = ObjectNone
		return nil
	case LevelMedium:
		c.level = LevelCoarse
		c.panels = coarsePanels()
		c.pending = 0
		c.rel = reliabilityDirection
		c.branch = BranchNone
		return nil
	case LevelFine:
		c.level = LevelMedium
		c.panels = mediumPanels(c.branch)
		c.pending = c.branch.anchor()
		c.rel = reliabilityCoarse
		c.fineCount = 0
		return nil
	default:
		return &InvalidStateError{Op: "back", Level: c.level}
	}
}

// confirm emits the terminal result from the pending grade.
func (c *Comparison) confirm() error {
	if c.pending == 0 {
		// Unreachable by construction: confirm paths all set pending first.
		return &InvalidStateError{Op: "confirm", Level: c.level}
	}
	magnitude, err := scale.Transform(c.pending, c.scaleType)
	if err != nil {
		return err
	}
	ratio := magnitude
	switch c.selected {
	case ObjectB:
		ratio = 1 / magnitude
	case ObjectNone:
		ratio = 1
	}
	c.result = Result{Ratio: ratio, Reliability: c.rel, Scale: c.scaleType}
	c.level = LevelDone
	return nil
}

func coarsePanels() []Panel {
	return []Panel{{Grade: 2, Kind: PanelActive}, {Grade: 5, Kind: PanelActive}, {Grade: 9, Kind: PanelActive}}
}

// mediumPanels builds the branch pattern. The coarse anchors stay active
// (directly confirmable); the intermediates are grouped and expand into the
// fine level. The three patterns are fixed tables, not derived from a
// general rule: the asymmetry mirrors the 9-point scale's structure.
func mediumPanels(b Branch) []Panel {
	switch b {
	case BranchWeak:
		return []Panel{
			{Grade: 2, Kind: PanelActive},
			{Grade: 3, Kind: PanelGrouped},
			{Grade: 4, Kind: PanelGrouped},
			{Grade: 5, Kind: PanelActive},
			{Grade: 9, Kind: PanelActive},
		}
	case BranchStrong:
		return []Panel{
			{Grade: 2, Kind: PanelActive},
			{Grade: 5, Kind: PanelActive},
			{Grade: 6, Kind: PanelGrouped},
			{Grade: 7, Kind: PanelGrouped},
			{Grade: 9, Kind: PanelActive},
		}
	case BranchExtreme:
		return []Panel{
			{Grade: 2, Kind: PanelActive},
			{Grade: 5, Kind: PanelActive},
			{Grade: 8, Kind: PanelGrouped},
			{Grade: 9, Kind: PanelActive},
		}
	default:
		return nil
	}
}

// finePanels subdivides the branch band into n midpoint grades.
func finePanels(b Branch, n int) []Panel {
	lo, hi := b.band()
	grades := scale.Midpoints(lo, hi, n)
	panels := make([]Panel, len(grades))
	for i, g := range grades {
		panels[i] = Panel{Grade: g, Kind: PanelActive}
	}
	return panels
}

func branchFor(anchor float64) (Branch, error) {
	switch anchor {
	case 2:
		return BranchWeak, nil
	case 5:
		return BranchStrong, nil
	case 9:
		return BranchExtreme, nil
	default:
		return BranchNone, &scale.InvalidGradeError{Grade: anchor, Reason: "not a coarse anchor"}
	}
}

func findPanel(panels []Panel, g float64) int {
	for i, p := range panels {
		if math.Abs(p.Grade-g) < gradeEpsilon {
			return i
		}
	}
	return -1
}
