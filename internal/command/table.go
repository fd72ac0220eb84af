package command

func key(k rune) Accel { return NewAccel(k, false, false) }
func shift(k rune) Accel { return NewAccel(k, true, false) }
func ctrl(k rune) Accel { return NewAccel(k, false, true) }
func ctrlShift(k rune) Accel { return NewAccel(k, true, true) }

// DefaultTable is the menu bar. Level 0 entries are menu titles.
var DefaultTable = []Entry{
	{Level: 0, Label: "&File"},
	{Level: 1, Label: "&New", ID: New, Accel: ctrl('N'), Family: FamilyFile},
	{Level: 1},
	{Level: 1, Label: "E&xit", ID: Exit, Accel: ctrl('Q'), Family: FamilyFile},

	{Level: 0, Label: "&Edit"},
	{Level: 1, Label: "&Undo", ID: Undo, Accel: ctrl('Z'), Family: FamilyEdit},
	{Level: 1, Label: "&Redo", ID: Redo, Accel: ctrl('Y'), Family: FamilyEdit},
	{Level: 1},
	{Level: 1, Label: "Snap Selection to &Grid", ID: SnapToGrid, Accel: key('.'), Family: FamilyEdit},
	{Level: 1},
	{Level: 1, Label: "Select &Edge Chain", ID: SelectChain, Accel: ctrl('E'), Family: FamilyEdit},
	{Level: 1, Label: "Select &All", ID: SelectAll, Accel: ctrl('A'), Family: FamilyEdit},
	{Level: 1, Label: "&Unselect All", ID: UnselectAll, Accel: key(EscapeKey), Family: FamilyEdit},
	{Level: 1},
	{Level: 1, Label: "&Delete", ID: Delete, Accel: key(DeleteKey), Family: FamilyEdit},

	{Level: 0, Label: "&View"},
	{Level: 1, Label: "Zoom &In", ID: ZoomIn, Accel: key('+'), Family: FamilyView},
	{Level: 1, Label: "Zoom &Out", ID: ZoomOut, Accel: key('-'), Family: FamilyView},
	{Level: 1, Label: "Zoom To &Fit", ID: ZoomToFit, Accel: key('F'), Family: FamilyView},
	{Level: 1},
	{Level: 1, Label: "Show Snap &Grid", ID: ShowGrid, Accel: key('>'), Kind: KindCheck, Family: FamilyView},
	{Level: 1},
	{Level: 1, Label: "Dimensions in &Millimeters", ID: UnitsMM, Kind: KindRadio, Family: FamilyView},
	{Level: 1, Label: "Dimensions in &Inches", ID: UnitsInches, Kind: KindRadio, Family: FamilyView},
	{Level: 1},
	{Level: 1, Label: "Show &Toolbar", ID: ShowToolbar, Kind: KindCheck, Family: FamilyView},
	{Level: 1, Label: "Show Property Bro&wser", ID: ShowTextWindow, Accel: key('\t'), Kind: KindCheck, Family: FamilyView},
	{Level: 1},
	{Level: 1, Label: "Command &Reference", ID: CommandReference, Accel: FunctionKey(1), Family: FamilyView},

	{Level: 0, Label: "&New Group"},
	{Level: 1, Label: "Sketch In &3d", ID: Group3D, Accel: ctrlShift('3'), Family: FamilyGroup},
	{Level: 1, Label: "Sketch In New &Workplane", ID: GroupWorkplane, Accel: ctrlShift('W'), Family: FamilyGroup},
	{Level: 1},
	{Level: 1, Label: "Step &Extrude", ID: GroupExtrude, Accel: ctrlShift('X'), Family: FamilyGroup},

	{Level: 0, Label: "&Sketch"},
	{Level: 1, Label: "In &Workplane", ID: SelWorkplane, Accel: key('2'), Kind: KindRadio, Family: FamilySketch},
	{Level: 1, Label: "Anywhere In &3d", ID: FreeIn3D, Accel: key('3'), Kind: KindRadio, Family: FamilySketch},
	{Level: 1},
	{Level: 1, Label: "Datum &Point", ID: DatumPoint, Accel: key('P'), Family: FamilySketch},
	{Level: 1, Label: "&Workplane", ID: Workplane, Family: FamilySketch},
	{Level: 1},
	{Level: 1, Label: "Line &Segment", ID: LineSegment, Accel: key('S'), Family: FamilySketch},
	{Level: 1, Label: "C&onstruction Line Segment", ID: ConstrSegment, Accel: shift('S'), Family: FamilySketch},
	{Level: 1, Label: "&Rectangle", ID: Rectangle, Accel: key('R'), Family: FamilySketch},
	{Level: 1, Label: "&Circle", ID: Circle, Accel: key('C'), Family: FamilySketch},
	{Level: 1, Label: "&Arc of a Circle", ID: Arc, Accel: key('A'), Family: FamilySketch},
	{Level: 1, Label: "&Bezier Cubic Spline", ID: Cubic, Accel: key('B'), Family: FamilySketch},
	{Level: 1},
	{Level: 1, Label: "&Text in TrueType Font", ID: TTFText, Accel: key('T'), Family: FamilySketch},
	{Level: 1},
	{Level: 1, Label: "To&ggle Construction", ID: Construction, Accel: key('G'), Family: FamilySketch},
	{Level: 1, Label: "Split Curves at &Intersection", ID: SplitCurves, Accel: key('I'), Family: FamilySketch},

	{Level: 0, Label: "&Constrain"},
	{Level: 1, Label: "&Distance / Diameter", ID: DistanceDia, Accel: key('D'), Family: FamilyConstrain},
	{Level: 1, Label: "Re&ference Dimension", ID: RefDistance, Accel: shift('D'), Family: FamilyConstrain},
	{Level: 1, Label: "A&ngle", ID: Angle, Accel: key('N'), Family: FamilyConstrain},
	{Level: 1, Label: "Reference An&gle", ID: RefAngle, Accel: shift('N'), Family: FamilyConstrain},
	{Level: 1, Label: "Other S&upplementary Angle", ID: OtherAngle, Accel: key('U'), Family: FamilyConstrain},
	{Level: 1, Label: "Toggle R&eference Dim", ID: Reference, Accel: key('E'), Family: FamilyConstrain},
	{Level: 1},
	{Level: 1, Label: "&Horizontal", ID: Horizontal, Accel: key('H'), Family: FamilyConstrain},
	{Level: 1, Label: "&Vertical", ID: Vertical, Accel: key('V'), Family: FamilyConstrain},
	{Level: 1},
	{Level: 1, Label: "&On Point / Curve / Plane", ID: OnEntity, Accel: key('O'), Family: FamilyConstrain},
	{Level: 1, Label: "E&qual Length / Radius", ID: Equal, Accel: key('Q'), Family: FamilyConstrain},
	{Level: 1, Label: "At &Midpoint", ID: AtMidpoint, Accel: key('M'), Family: FamilyConstrain},
	{Level: 1, Label: "S&ymmetric", ID: Symmetric, Accel: key('Y'), Family: FamilyConstrain},
	{Level: 1, Label: "Para&llel / Tangent", ID: Parallel, Accel: key('L'), Family: FamilyConstrain},
	{Level: 1, Label: "&Perpendicular", ID: Perpendicular, Accel: key('['), Family: FamilyConstrain},
	{Level: 1, Label: "Lock Point Where &Dragged", ID: WhereDragged, Accel: key(']'), Family: FamilyConstrain},
	{Level: 1},
	{Level: 1, Label: "Comment", ID: Comment, Accel: key(';'), Family: FamilyConstrain},

	{Level: 0, Label: "&Help"},
	{Level: 1, Label: "&About", ID: About, Family: FamilyHelp},

	{Level: -1},
}

// PlainLabel strips the '&' mnemonic markers from a menu label
func PlainLabel(label string) string {
	out := make([]rune, 0, len(label))
	for _, r := range label {
		if r != '&' {
			out = append(out, r)
		}
	}
	return string(out)
}
