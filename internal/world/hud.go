package world

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TaskState mirrors a task's progress for display.
type TaskState int

const (
	TaskOpen TaskState = iota
	TaskCarrying
	TaskDone
)

type TaskLine struct {
	Label string
	State TaskState
}

// HUD is the overlay content for one frame.
type HUD struct {
	Tasks    []TaskLine
	Holding  string
	Prompt   bool
	Cutscene bool
	Escaped  bool

	Time   float64
	Deaths int
	Stomps int

	Position rl.Vector3
	Grounded bool
	Stats    DrawStats
}

// Controls are the debug toggles the HUD edits in place.
type Controls struct {
	Open        bool
	DebugOutput bool
	Wireframes  bool
	Margin      float32
}

var (
	colorPanel     = rl.NewColor(18, 18, 24, 220)
	colorPanelEdge = rl.NewColor(50, 50, 65, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorTextMain  = rl.NewColor(255, 255, 255, 255)
	colorTextDim   = rl.NewColor(200, 200, 208, 255)
	colorTextMuted = rl.NewColor(119, 119, 119, 255)
	colorCarrying  = rl.NewColor(250, 200, 60, 255)
	colorTaskDone  = rl.NewColor(90, 200, 120, 255)
)

const (
	hudMargin     = 10
	hudLineHeight = 22
	hudPanelWidth = 260
	hudTextSize   = 18
	maxMargin     = 2
)

// InitStyle sets the raygui theme used by the debug panel.
func InitStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(28, 28, 38, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(38, 38, 52, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextDim))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextMain))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextMain))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorPanelEdge))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// TaskColor is the text color for a task line.
func TaskColor(s TaskState) rl.Color {
	switch s {
	case TaskDone:
		return colorTaskDone
	case TaskCarrying:
		return colorCarrying
	default:
		return colorTextDim
	}
}

// TaskMark is the checkbox glyph drawn before a task line.
func TaskMark(s TaskState) string {
	switch s {
	case TaskDone:
		return "[x]"
	case TaskCarrying:
		return "[~]"
	default:
		return "[ ]"
	}
}

// DrawHUD draws the task list, the interact prompt and, when ctl.Open, the
// debug panel. It must run between BeginDrawing and EndDrawing, after the
// 3D pass.
func DrawHUD(h HUD, ctl *Controls) {
	width := int32(rl.GetScreenWidth())
	height := int32(rl.GetScreenHeight())

	panelHeight := int32(hudMargin*2 + hudLineHeight*(len(h.Tasks)+2))
	rl.DrawRectangle(hudMargin, hudMargin, hudPanelWidth, panelHeight, colorPanel)
	rl.DrawRectangleLines(hudMargin, hudMargin, hudPanelWidth, panelHeight, colorPanelEdge)

	x := int32(hudMargin * 2)
	y := int32(hudMargin * 2)
	rl.DrawText("TASKS", x, y, hudTextSize, colorAccent)
	y += hudLineHeight
	for _, t := range h.Tasks {
		rl.DrawText(TaskMark(t.State)+" "+t.Label, x, y, hudTextSize, TaskColor(t.State))
		y += hudLineHeight
	}
	holding := "Holding: nothing"
	if h.Holding != "" {
		holding = "Holding: " + h.Holding
	}
	rl.DrawText(holding, x, y, hudTextSize, colorTextMuted)

	status := fmt.Sprintf("%.0fs  deaths %d  stomps %d", h.Time, h.Deaths, h.Stomps)
	rl.DrawText(status, width-rl.MeasureText(status, hudTextSize)-hudMargin, hudMargin, hudTextSize, colorTextMain)

	switch {
	case h.Escaped:
		centerText("ESCAPED!", width, height/3, 48, colorTaskDone)
	case h.Cutscene:
		centerText("Launching...", width, height/3, 36, colorTextMain)
	case h.Prompt:
		centerText("Press E", width, height/2+40, 24, colorTextMain)
	}

	if !h.Cutscene {
		// Crosshair
		cx, cy := width/2, height/2
		rl.DrawLine(cx-8, cy, cx+8, cy, colorTextMain)
		rl.DrawLine(cx, cy-8, cx, cy+8, colorTextMain)
	}

	if ctl != nil && ctl.Open {
		drawDebugPanel(h, ctl, width)
	}
}

func drawDebugPanel(h HUD, ctl *Controls, width int32) {
	px := float32(width - hudPanelWidth - hudMargin)
	py := float32(hudMargin + hudLineHeight*2)
	gui.Panel(rl.NewRectangle(px, py, hudPanelWidth, 190), "Debug")

	row := func(i int) rl.Rectangle {
		return rl.NewRectangle(px+10, py+30+float32(i)*26, hudPanelWidth-20, 20)
	}

	gui.Label(row(0), fmt.Sprintf("pos %.1f %.1f %.1f", h.Position.X, h.Position.Y, h.Position.Z))
	grounded := "airborne"
	if h.Grounded {
		grounded = "grounded"
	}
	gui.Label(row(1), fmt.Sprintf("%s  drawn %d  culled %d", grounded, h.Stats.Volumes, h.Stats.Culled))

	ctl.DebugOutput = gui.CheckBox(rl.NewRectangle(px+10, py+30+2*26, 16, 16), "Resolver log", ctl.DebugOutput)
	ctl.Wireframes = gui.CheckBox(rl.NewRectangle(px+10, py+30+3*26, 16, 16), "Wireframes", ctl.Wireframes)

	sb := row(4)
	sb.X += 50
	sb.Width -= 90
	ctl.Margin = gui.Slider(sb, "Margin", fmt.Sprintf("%.2f", ctl.Margin), ctl.Margin, 0, maxMargin)
}

func centerText(text string, width, y, size int32, color rl.Color) {
	rl.DrawText(text, (width-rl.MeasureText(text, size))/2, y, size, color)
}
