package tui

import (
	"fmt"
	"log"

	"github.com/bassamadnan/readmail/gmail"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App is the interactive browser over a finished read.
type App struct {
	*tview.Application
	rootPages        *tview.Pages
	dashboardFlex    *tview.Flex
	emailListView    *EmailListView
	previewPane      *PreviewPane
	focusedEmailView *FocusedEmailView
	statusBar        *tview.TextView

	result *gmail.ResultSet
}

func NewApp(result *gmail.ResultSet) *App {
	tuiApp := &App{
		Application: tview.NewApplication(),
		result:      result,
	}

	tuiApp.emailListView = NewEmailListView(tuiApp)
	tuiApp.previewPane = NewPreviewPane()
	tuiApp.focusedEmailView = NewFocusedEmailView()

	tuiApp.dashboardFlex = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(tuiApp.emailListView.List, 0, 1, true).
		AddItem(tuiApp.previewPane, 0, 3, false)
	tuiApp.dashboardFlex.SetBackgroundColor(tcell.ColorDefault)

	tuiApp.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tuiApp.statusBar.SetBackgroundColor(tcell.ColorDefault)

	mainLayoutWithStatus := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tuiApp.dashboardFlex, 0, 1, true).
		AddItem(tuiApp.statusBar, 1, 0, false)
	mainLayoutWithStatus.SetBackgroundColor(tcell.ColorDefault)

	tuiApp.rootPages = tview.NewPages().
		AddPage(PageDashboard, mainLayoutWithStatus, true, true).
		AddPage(PageFocusedEmail, tuiApp.focusedEmailView, true, false)

	tuiApp.Application.SetRoot(tuiApp.rootPages, true).EnableMouse(true)
	tuiApp.setGlobalKeybindings()

	tuiApp.previewPane.SetWelcomeMessage()
	if result != nil {
		tuiApp.emailListView.SetEmails(result.Emails)
	}
	tuiApp.setStandardStatusMessage()

	return tuiApp
}

func (a *App) Run() error {
	if a.emailListView != nil && a.emailListView.List != nil {
		a.Application.SetFocus(a.emailListView.List)
	} else {
		log.Println("TUI: EmailListView or its list is nil at Run, cannot set focus.")
	}
	return a.Application.Run()
}

func (a *App) setGlobalKeybindings() {
	a.Application.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		currentPage, _ := a.rootPages.GetFrontPage()
		if event.Key() == tcell.KeyCtrlC {
			a.Stop()
			return nil
		}
		if event.Rune() == 'q' || event.Rune() == 'Q' {
			a.Stop()
			return nil
		}

		if currentPage == PageFocusedEmail {
			if event.Key() == tcell.KeyEscape {
				a.ShowDashboardView()
				return nil
			}
		}
		return event
	})
}

func (a *App) statusText() string {
	query, total := "", 0
	if a.result != nil {
		query, total = a.result.QueryUsed, a.result.TotalFound
	}
	return fmt.Sprintf(" [::d]Query: '%s' | %d emails | [::b]Q/Ctrl+C[::-]:Quit [::b]Ent[::-]:Full [::b]Esc[::-]:Back",
		tview.Escape(query), total)
}

func (a *App) setStandardStatusMessage() {
	if a.statusBar == nil {
		return
	}
	a.statusBar.SetText(a.statusText())
}

func (a *App) UpdatePreviewPane(email gmail.ParsedEmail) {
	if a.previewPane != nil {
		a.previewPane.SetEmailContent(email)
	}
}

func (a *App) ShowWelcomeMessageInPreview() {
	if a.previewPane != nil {
		a.previewPane.SetWelcomeMessage()
	}
}

func (a *App) IsPreviewShowingWelcome() bool {
	return a.previewPane != nil && a.previewPane.IsShowingWelcome()
}

func (a *App) ShowFocusedEmailView(email gmail.ParsedEmail) {
	if a.focusedEmailView == nil || a.rootPages == nil {
		return
	}
	a.focusedEmailView.SetEmailContent(email)
	a.rootPages.SwitchToPage(PageFocusedEmail)
	if a.focusedEmailView.textView != nil {
		a.Application.SetFocus(a.focusedEmailView.textView)
	}
}

func (a *App) ShowDashboardView() {
	if a.rootPages == nil {
		return
	}
	a.rootPages.SwitchToPage(PageDashboard)
	if a.emailListView != nil && a.emailListView.List != nil {
		if a.IsPreviewShowingWelcome() {
			if email, ok := a.emailListView.currentEmail(); ok {
				a.UpdatePreviewPane(email)
			}
		}
		a.Application.SetFocus(a.emailListView.List)
	}
}
