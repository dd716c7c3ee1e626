// Stark curve viewer.
//
// Interactive companion to starkplot: open a Stark storage file, adjust
// selection bounds and display units, and the energy/dipole panels
// re-render immediately. Unit choices, panel toggles and the last file are
// kept in the Fyne preferences store between sessions.
package main

import (
	"flag"
	"fmt"
	"image"
	png "image/png"
	"path/filepath"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/gharib85/cmistark/src/config"
	"github.com/gharib85/cmistark/src/figure"
	"github.com/gharib85/cmistark/src/molecule"
	"github.com/gharib85/cmistark/src/plot"
)

const chartWidth = 1000

type uiState struct {
	app    fyne.App
	window fyne.Window

	filePath string
	store    *molecule.File

	cfg config.Settings

	fileLabel *widget.Label
	jmaxLabel *widget.Label
	status    *widget.Label
	chartImg  *canvas.Image
}

func main() {
	var fileFlag string
	flag.StringVar(&fileFlag, "file", "", "Stark storage file to open")
	flag.Parse()

	a := app.NewWithID("com.cmistark.starkviewer")
	w := a.NewWindow("Stark Viewer")
	w.Resize(fyne.NewSize(1100, 820))

	state := &uiState{
		app:      a,
		window:   w,
		filePath: fileFlag,
		cfg:      config.Load(),
	}
	loadPrefs(state)
	if fileFlag != "" {
		state.filePath = fileFlag
	}

	state.fileLabel = widget.NewLabel(truncatePath(state.filePath, 60))
	state.status = widget.NewLabel("")
	state.chartImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.chartImg.FillMode = canvas.ImageFillContain
	state.chartImg.SetMinSize(fyne.NewSize(chartWidth, 700))

	energySelect := widget.NewSelect([]string{"MHz", "GHz", "invcm", "J"}, nil)
	energySelect.Selected = state.cfg.EnergyUnit
	dipoleSelect := widget.NewSelect([]string{"MHz", "GHz", "invcm", "J", "Debye"}, nil)
	dipoleSelect.Selected = state.cfg.DipoleUnit
	dipoleChk := widget.NewCheck("Dipole panel", nil)
	dipoleChk.SetChecked(state.cfg.Dipole)
	legendChk := widget.NewCheck("Legend", nil)
	legendChk.SetChecked(state.cfg.Legend)
	nssSelect := widget.NewSelect([]string{"none", "Ka", "Kb", "Kc"}, nil)
	if state.cfg.NSSForbidden == "" {
		nssSelect.Selected = "none"
	} else {
		nssSelect.Selected = state.cfg.NSSForbidden
	}

	state.jmaxLabel = widget.NewLabel(fmt.Sprintf("%d", state.cfg.Jmax))
	decJ := widget.NewButton("-", func() {
		if state.cfg.Jmax > 0 {
			state.cfg.Jmax--
			state.jmaxLabel.SetText(fmt.Sprintf("%d", state.cfg.Jmax))
			savePrefs(state)
			redraw(state)
		}
	})
	incJ := widget.NewButton("+", func() {
		if state.cfg.Jmax < 9 {
			state.cfg.Jmax++
			state.jmaxLabel.SetText(fmt.Sprintf("%d", state.cfg.Jmax))
			savePrefs(state)
			redraw(state)
		}
	})

	statesEntry := widget.NewEntry()
	statesEntry.SetPlaceHolder("explicit states, e.g. 1010,2 (empty: range mode)")
	statesEntry.SetText(state.cfg.States)
	statesEntry.OnSubmitted = func(v string) {
		state.cfg.States = v
		savePrefs(state)
		redraw(state)
	}

	energySelect.OnChanged = func(v string) {
		state.cfg.EnergyUnit = v
		savePrefs(state)
		redraw(state)
	}
	dipoleSelect.OnChanged = func(v string) {
		state.cfg.DipoleUnit = v
		savePrefs(state)
		redraw(state)
	}
	dipoleChk.OnChanged = func(on bool) {
		state.cfg.Dipole = on
		savePrefs(state)
		redraw(state)
	}
	legendChk.OnChanged = func(on bool) {
		state.cfg.Legend = on
		savePrefs(state)
		redraw(state)
	}
	nssSelect.OnChanged = func(v string) {
		if v == "none" {
			state.cfg.NSSForbidden = ""
		} else {
			state.cfg.NSSForbidden = v
		}
		savePrefs(state)
		redraw(state)
	}

	openBtn := widget.NewButton("Open…", func() { openFileDialog(state) })

	top := container.NewHBox(openBtn, state.fileLabel)
	controls := container.NewHBox(
		widget.NewLabel("Energy:"), energySelect,
		widget.NewLabel("Dipole:"), dipoleSelect,
		dipoleChk, legendChk,
		widget.NewLabel("NSS:"), nssSelect,
		widget.NewLabel("Jmax:"), decJ, state.jmaxLabel, incJ,
	)
	statesRow := container.NewBorder(nil, nil, widget.NewLabel("States:"), state.status, statesEntry)
	header := container.NewVBox(top, controls, statesRow)
	w.SetContent(container.NewBorder(header, nil, nil, nil, container.NewScroll(state.chartImg)))

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Export PNG…", func() { exportPNG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu))
	if canv := w.Canvas(); canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}

	if state.filePath != "" {
		loadStorage(state)
	}
	w.ShowAndRun()
}

// loadStorage opens the current file and redraws; errors surface in a dialog.
func loadStorage(state *uiState) {
	f, err := molecule.Open(state.filePath)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.store = f
	state.fileLabel.SetText(truncatePath(state.filePath, 60))
	savePrefs(state)
	redraw(state)
}

// redraw runs the pipeline over the open store and swaps the chart image.
// Selection errors (e.g. a malformed states entry) land in the status label
// so the previous figure stays visible.
func redraw(state *uiState) {
	if state.store == nil {
		return
	}
	opt, err := state.cfg.PlotOptions()
	if err != nil {
		state.status.SetText(err.Error())
		return
	}
	fig := figure.New(state.store.Name(), chartWidth, nil)
	fig.SetFooter(filepath.Base(state.filePath))
	if err := plot.Render([]plot.Store{state.store}, opt, fig); err != nil {
		state.status.SetText(err.Error())
		return
	}
	state.status.SetText(fmt.Sprintf("%d states", len(state.store.States())))
	state.chartImg.Image = fig.Image()
	state.chartImg.Refresh()
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		loadStorage(state)
	}, state.window)
	d.Show()
}

func exportPNG(state *uiState) {
	if state.chartImg == nil || state.chartImg.Image == nil || state.store == nil {
		dialog.ShowInformation("Export", "No figure to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, state.chartImg.Image)
	}, state.window)
	base := filepath.Base(state.filePath)
	fs.SetFileName(strings.TrimSuffix(base, filepath.Ext(base)) + ".png")
	fs.Show()
}

func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("energyUnit", state.cfg.EnergyUnit)
	prefs.SetString("dipoleUnit", state.cfg.DipoleUnit)
	prefs.SetBool("dipole", state.cfg.Dipole)
	prefs.SetBool("legend", state.cfg.Legend)
	prefs.SetString("nssForbidden", state.cfg.NSSForbidden)
	prefs.SetInt("jmax", state.cfg.Jmax)
	prefs.SetString("states", state.cfg.States)
}

func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	state.filePath = prefs.StringWithFallback("lastFile", state.filePath)
	state.cfg.EnergyUnit = prefs.StringWithFallback("energyUnit", state.cfg.EnergyUnit)
	state.cfg.DipoleUnit = prefs.StringWithFallback("dipoleUnit", state.cfg.DipoleUnit)
	state.cfg.Dipole = prefs.BoolWithFallback("dipole", state.cfg.Dipole)
	state.cfg.Legend = prefs.BoolWithFallback("legend", state.cfg.Legend)
	state.cfg.NSSForbidden = prefs.StringWithFallback("nssForbidden", state.cfg.NSSForbidden)
	if n := prefs.IntWithFallback("jmax", state.cfg.Jmax); n >= 0 && n <= 9 {
		state.cfg.Jmax = n
	}
	state.cfg.States = prefs.StringWithFallback("states", state.cfg.States)
}

// truncatePath shortens long paths for the header label, keeping the tail.
func truncatePath(p string, max int) string {
	if p == "" {
		return "(no file)"
	}
	if len(p) <= max {
		return p
	}
	return "…" + p[len(p)-max:]
}
