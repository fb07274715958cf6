package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"covid-booking/internal/data/entity"
	"covid-booking/pkg/utils"
)

// View owns the terminal conversation. All prompting and printing for the
// menus goes through here so the menu logic stays testable.
type View struct {
	in  *bufio.Reader
	out io.Writer
}

func NewView(in io.Reader, out io.Writer) *View {
	return &View{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (v *View) Say(format string, args ...any) {
	fmt.Fprintf(v.out, format+"\n", args...)
}

func (v *View) ShowError(err error) {
	fmt.Fprintf(v.out, "Error: %v\n", err)
}

// Prompt reads a single trimmed line.
func (v *View) Prompt(label string) string {
	fmt.Fprintf(v.out, "%s: ", label)
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// PromptInt keeps asking until the user types a valid number.
func (v *View) PromptInt(label string) int {
	for {
		raw := v.Prompt(label)
		value := utils.ParseInt(raw, -1)
		if value >= 0 {
			return value
		}
		v.Say("Please enter a number.")
	}
}

func (v *View) PromptYesNo(label string) bool {
	for {
		answer := strings.ToLower(v.Prompt(label + " (y/n)"))
		switch answer {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		v.Say("Please answer y or n.")
	}
}

// Choose prints a numbered menu and returns the selected option index
// (1-based). 0 always means back/exit and is accepted without being listed.
func (v *View) Choose(title string, options []string) int {
	for {
		v.Say("")
		v.Say("=== %s ===", title)
		for i, option := range options {
			v.Say("%d. %s", i+1, option)
		}
		v.Say("0. Back")

		choice := v.PromptInt("Select")
		if choice >= 0 && choice <= len(options) {
			return choice
		}
		v.Say("Invalid selection.")
	}
}

func (v *View) ShowBooking(b *entity.Booking) {
	v.Say("Booking %s", b.ID)
	v.Say("  start time: %s", b.StartTime)
	if b.Kind() == entity.BookingKindFacility {
		v.Say("  testing site: %s", b.TestingSiteID)
		v.Say("  PIN: %s", b.PIN())
	} else {
		v.Say("  home booking")
		v.Say("  QR code: %s", b.QRCode())
		v.Say("  access URL: %s", b.AccessURL())
	}
	if status := b.Status(); status != "" {
		v.Say("  status: %s", status)
	}
	if b.Notes != "" {
		v.Say("  notes: %s", b.Notes)
	}
	v.Say("  last updated: %s", b.UpdatedAt)
}

func (v *View) ShowSite(s *entity.TestingSite) {
	v.Say("%s (%s)", s.Name, s.ID)
	v.Say("  %s, %s", s.Address.Street, s.Address.Suburb)
	if s.Description != "" {
		v.Say("  %s", s.Description)
	}
}
