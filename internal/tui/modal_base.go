package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

func modalSize(width, height int) (int, int) {
	w := width * 3 / 4
	if w > 100 {
		w = 100
	}
	h := height * 3 / 4
	return w, h
}

func newModalViewport(width, height int) viewport.Model {
	w, h := modalSize(width, height)
	vp := viewport.New(w-4, h-4)
	return vp
}

func (m *ViewerModel) renderModal() string {
	var title, content string
	switch m.activeModal {
	case ModalHelp:
		title, content = m.helpModalContent()
	case ModalDetails:
		title, content = m.detailsModalContent()
	case ModalDebug:
		title, content = m.debugModalContent()
	default:
		return ""
	}

	w, h := modalSize(m.width, m.height)

	m.modalVP.SetContent(content)

	header := titleStyle.Render(title)
	footer := dimTextStyle.Render("↑↓: Scroll • ESC: Close")
	body := lipgloss.JoinVertical(lipgloss.Left, header, "", m.modalVP.View(), footer)

	box := panelBorderStyle.Width(w - 2).Height(h - 2).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
