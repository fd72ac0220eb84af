package command

import "fmt"

// ID identifies a menu, toolbar or keyboard command
type ID int

const (
	None ID = iota

	// File
	New
	Exit

	// Edit
	Undo
	Redo
	Delete
	SelectAll
	UnselectAll
	SnapToGrid
	SelectChain

	// View
	ZoomIn
	ZoomOut
	ZoomToFit
	ShowGrid
	ShowToolbar
	ShowTextWindow
	UnitsMM
	UnitsInches
	CommandReference

	// Group
	Group3D
	GroupWorkplane
	GroupExtrude

	// Sketch
	SelWorkplane
	FreeIn3D
	DatumPoint
	Workplane
	LineSegment
	ConstrSegment
	Rectangle
	Circle
	Arc
	Cubic
	TTFText
	Construction
	SplitCurves

	// Constrain
	DistanceDia
	RefDistance
	Angle
	RefAngle
	OtherAngle
	Reference
	Equal
	OnEntity
	Symmetric
	AtMidpoint
	Horizontal
	Vertical
	Parallel
	Perpendicular
	WhereDragged
	Comment

	// Help
	About
)

var idNames = map[ID]string{
	None:             "none",
	New:              "new",
	Exit:             "exit",
	Undo:             "undo",
	Redo:             "redo",
	Delete:           "delete",
	SelectAll:        "select-all",
	UnselectAll:      "unselect-all",
	SnapToGrid:       "snap-to-grid",
	SelectChain:      "select-chain",
	ZoomIn:           "zoom-in",
	ZoomOut:          "zoom-out",
	ZoomToFit:        "zoom-to-fit",
	ShowGrid:         "show-grid",
	ShowToolbar:      "show-toolbar",
	ShowTextWindow:   "show-text-window",
	UnitsMM:          "units-mm",
	UnitsInches:      "units-inches",
	CommandReference: "command-reference",
	Group3D:          "group-3d",
	GroupWorkplane:   "group-workplane",
	GroupExtrude:     "group-extrude",
	SelWorkplane:     "sel-workplane",
	FreeIn3D:         "free-in-3d",
	DatumPoint:       "datum-point",
	Workplane:        "workplane",
	LineSegment:      "line-segment",
	ConstrSegment:    "construction-segment",
	Rectangle:        "rectangle",
	Circle:           "circle",
	Arc:              "arc",
	Cubic:            "cubic",
	TTFText:          "ttf-text",
	Construction:     "construction",
	SplitCurves:      "split-curves",
	DistanceDia:      "distance-dia",
	RefDistance:      "ref-distance",
	Angle:            "angle",
	RefAngle:         "ref-angle",
	OtherAngle:       "other-angle",
	Reference:        "reference",
	Equal:            "equal",
	OnEntity:         "on-entity",
	Symmetric:        "symmetric",
	AtMidpoint:       "at-midpoint",
	Horizontal:       "horizontal",
	Vertical:         "vertical",
	Parallel:         "parallel",
	Perpendicular:    "perpendicular",
	WhereDragged:     "where-dragged",
	Comment:          "comment",
	About:            "about",
}

func (id ID) String() string {
	if s, ok := idNames[id]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(id))
}

// Family groups commands that share one handler, one per menu
type Family int

const (
	FamilyNone Family = iota
	FamilyFile
	FamilyEdit
	FamilyView
	FamilyGroup
	FamilySketch
	FamilyConstrain
	FamilyHelp
)

func (f Family) String() string {
	switch f {
	case FamilyFile:
		return "file"
	case FamilyEdit:
		return "edit"
	case FamilyView:
		return "view"
	case FamilyGroup:
		return "group"
	case FamilySketch:
		return "sketch"
	case FamilyConstrain:
		return "constrain"
	case FamilyHelp:
		return "help"
	}
	return "none"
}

// Kind is how a menu entry presents its state
type Kind int

const (
	KindNormal Kind = iota
	KindCheck
	KindRadio
)
