package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bassamadnan/readmail/gmail"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	PageDashboard    = "dashboard"
	PageFocusedEmail = "focusedEmail"
)

type EmailListView struct {
	*tview.List
	app    *App
	emails []gmail.ParsedEmail
}

func NewEmailListView(app *App) *EmailListView {
	list := tview.NewList().
		ShowSecondaryText(true).
		SetSecondaryTextColor(tcell.ColorDimGray)

	list.SetBackgroundColor(tcell.ColorDefault)
	list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorSteelBlue).
		Attributes(tcell.AttrBold))

	list.SetBorder(true).SetTitle("Emails")

	elv := &EmailListView{
		List:   list,
		app:    app,
		emails: []gmail.ParsedEmail{},
	}

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		if elv.app == nil {
			return
		}
		if index >= 0 && index < len(elv.emails) {
			elv.app.UpdatePreviewPane(elv.emails[index])
		} else if elv.List.GetItemCount() == 0 {
			elv.app.ShowWelcomeMessageInPreview()
		}
	})

	list.SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		if elv.app == nil {
			return
		}
		if index >= 0 && index < len(elv.emails) {
			elv.app.ShowFocusedEmailView(elv.emails[index])
		}
	})

	return elv
}

// SetEmails replaces the list contents, keeping the order the API returned.
func (elv *EmailListView) SetEmails(emails []gmail.ParsedEmail) {
	elv.emails = append([]gmail.ParsedEmail(nil), emails...)
	elv.List.Clear()
	now := time.Now()
	for _, email := range elv.emails {
		mainText, secondaryText := listItemText(email, now)
		elv.List.AddItem(mainText, secondaryText, 0, nil)
	}

	if elv.List.GetItemCount() == 0 {
		if elv.app != nil {
			elv.app.ShowWelcomeMessageInPreview()
		}
		return
	}
	elv.List.SetCurrentItem(0)
	if elv.app != nil {
		elv.app.UpdatePreviewPane(elv.emails[0])
	}
}

func (elv *EmailListView) currentEmail() (gmail.ParsedEmail, bool) {
	index := elv.List.GetCurrentItem()
	if elv.List.GetItemCount() == 0 || index < 0 || index >= len(elv.emails) {
		return gmail.ParsedEmail{}, false
	}
	return elv.emails[index], true
}

func listItemText(email gmail.ParsedEmail, now time.Time) (string, string) {
	if email.Failed() {
		return "[red](unreadable message)", fmt.Sprintf("[::d]%s", tview.Escape(email.ID))
	}
	subject := truncate(subjectOrPlaceholder(email.Subject), 25)
	fromShort := truncate(shortSender(email.From), 15)
	dateStr := formatEmailDate(parseEmailDate(email.Date), now)

	mainText := fmt.Sprintf("[white]%s", tview.Escape(subject))
	separatorLine := strings.Repeat("─", 20)
	secondaryText := fmt.Sprintf("[::d]%s · %s\n%s", tview.Escape(fromShort), dateStr, separatorLine)
	return mainText, secondaryText
}

// emailDetailText renders headers and body for the preview and focused views.
func emailDetailText(email gmail.ParsedEmail, ruleWidth int) string {
	var builder strings.Builder
	if email.Failed() {
		builder.WriteString(fmt.Sprintf("[red::b]%s[-::-]\n\n[::b]ID:[::-] %s\n", tview.Escape(email.Error), tview.Escape(email.ID)))
		return builder.String()
	}
	builder.WriteString(fmt.Sprintf("[::b]From:[::-] %s\n", tview.Escape(email.From)))
	builder.WriteString(fmt.Sprintf("[::b]To:[::-] %s\n", tview.Escape(email.To)))
	builder.WriteString(fmt.Sprintf("[::b]Date:[::-] %s\n", tview.Escape(fullEmailDate(email.Date))))
	if len(email.Labels) > 0 {
		builder.WriteString(fmt.Sprintf("[::b]Labels:[::-] %s\n", tview.Escape(strings.Join(email.Labels, ", "))))
	}
	builder.WriteString(fmt.Sprintf("[::b]Subject:[::-] %s\n\n", tview.Escape(email.Subject)))
	builder.WriteString(strings.Repeat("─", ruleWidth) + "\n\n")
	body := email.Body
	if !email.HasBody {
		body = email.Snippet
	}
	builder.WriteString(tview.Escape(strings.ReplaceAll(body, "\r\n", "\n")))
	return builder.String()
}

type PreviewPane struct {
	*tview.TextView
	isWelcome bool
}

func NewPreviewPane() *PreviewPane {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	tv.SetBackgroundColor(tcell.ColorDefault)
	tv.SetBorder(true).SetTitle("Preview")
	return &PreviewPane{TextView: tv, isWelcome: true}
}

func (pp *PreviewPane) SetEmailContent(email gmail.ParsedEmail) {
	pp.isWelcome = false
	pp.SetText(emailDetailText(email, 60)).ScrollToBeginning().SetTextAlign(tview.AlignLeft)
	pp.SetTitle(fmt.Sprintf("Preview: %s", truncate(subjectOrPlaceholder(email.Subject), 40)))
}

func (pp *PreviewPane) SetWelcomeMessage() {
	pp.isWelcome = true
	pp.SetText("\n[lightblue::b]readmail[-::-]\n\nNo email selected or list is empty.\n\n[::d]Navigate emails with ↑ ↓ keys.\nPress Enter to open in full view.\nPress Q or Ctrl+C to quit.[::-]").
		ScrollToBeginning()
	pp.SetTitle("Home")
}

func (pp *PreviewPane) IsShowingWelcome() bool {
	return pp.isWelcome
}

type FocusedEmailView struct {
	*tview.Frame
	textView *tview.TextView
}

func NewFocusedEmailView() *FocusedEmailView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	textView.SetBackgroundColor(tcell.ColorDefault)

	frame := tview.NewFrame(textView).
		AddText("", true, tview.AlignCenter, tcell.ColorYellow).
		AddText("Press Esc to go back", false, tview.AlignCenter, tcell.ColorDimGray)
	frame.SetBorder(true).SetBackgroundColor(tcell.ColorDefault)

	return &FocusedEmailView{
		Frame:    frame,
		textView: textView,
	}
}

func (fev *FocusedEmailView) SetEmailContent(email gmail.ParsedEmail) {
	fev.textView.SetText(emailDetailText(email, 70)).ScrollToBeginning()
	fev.Frame.Clear().
		AddText(fmt.Sprintf("Subject: %s", truncate(subjectOrPlaceholder(email.Subject), 60)), true, tview.AlignCenter, tcell.ColorYellow).
		AddText("Press Esc to go back", false, tview.AlignCenter, tcell.ColorDimGray).
		SetPrimitive(fev.textView)
}
