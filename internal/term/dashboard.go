package term

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/propertyplus/propclient/internal/dashboard"
	"github.com/propertyplus/propclient/internal/notify"
)

// dashboard pages over the listings seen this session, offers the
// live-search box and keeps the notification badge fresh while open.
func (t *Term) dashboard(ctx context.Context) {
	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	poller := notify.NewPoller(
		t.session.NotificationCount,
		notify.DefaultInterval,
		func(count int) {
			if count > 0 {
				t.ui.Sayf("[%d unread notification(s)]", count)
			}
		},
		t.log,
	)
	poller.Start(pollCtx)
	defer poller.Stop()

	pager := dashboard.NewPager(dashboard.WideBreakpoint, len(t.listings))
	t.renderPage(pager.Render())

	for {
		t.ui.Say("[n] Next page  [p] Previous  [g N] Go to page  [w N] Set width  [s] Search  [o N] Open listing  [b] Back")
		input := t.ui.Prompt("Dashboard")
		cmd, arg, _ := strings.Cut(input, " ")
		switch strings.ToLower(cmd) {
		case "n":
			t.renderPage(pager.Next())
		case "p":
			t.renderPage(pager.Prev())
		case "g":
			if page, err := strconv.Atoi(arg); err == nil {
				t.renderPage(pager.SetPage(page))
			}
		case "w":
			if width, err := strconv.Atoi(arg); err == nil {
				t.renderPage(pager.Resize(width))
			}
		case "s":
			t.search(ctx)
		case "o":
			if _, err := strconv.Atoi(arg); err == nil {
				t.viewListingByID(ctx, arg)
				t.renderPage(pager.SetTotal(len(t.listings)))
			}
		case "b", "":
			return
		}
	}
}

// renderPage prints the visible slice of listings and the page strip.
func (t *Term) renderPage(strip dashboard.Strip) {
	if strip.First < strip.Last && strip.Last <= len(t.listings) {
		for _, id := range t.listings[strip.First:strip.Last] {
			t.ui.Sayf("  listing #%d", id)
		}
	} else {
		t.ui.Say("  (no listings yet - publish or open one first)")
	}
	t.ui.Say(renderStrip(strip))
}

// renderStrip formats the sliding page strip, e.g.
// "< 1 ... [4] 5 6 7 8 ... 12 >".
func renderStrip(s dashboard.Strip) string {
	var b strings.Builder
	if s.PrevEnabled {
		b.WriteString("< ")
	}
	if s.LeadingGap {
		b.WriteString("1 ... ")
	}
	for i, page := range s.Pages {
		if i > 0 {
			b.WriteString(" ")
		}
		if page == s.Page {
			b.WriteString("[" + strconv.Itoa(page) + "]")
		} else {
			b.WriteString(strconv.Itoa(page))
		}
	}
	if s.TrailingGap {
		b.WriteString(" ... " + strconv.Itoa(s.TotalPages))
	}
	if s.NextEnabled {
		b.WriteString(" >")
	}
	return b.String()
}

// search drives the debounced suggestion box until the user enters a
// blank line.
func (t *Term) search(ctx context.Context) {
	box := dashboard.NewSuggestionBox(t.client.SearchSuggestions, &suggestView{ui: t.ui}, nil, t.log)
	t.ui.Say("Type to search listings (blank line to stop).")
	for {
		q := t.ui.Prompt("Search")
		if q == "" {
			return
		}
		box.Input(ctx, q)
		time.Sleep(debounceSettle)
	}
}

func (t *Term) viewListingByID(ctx context.Context, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return
	}
	p, err := t.session.Property(ctx, id)
	if err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.printListing(p)
	t.remember(id)
}

func (t *Term) notifications(ctx context.Context) {
	count, err := t.session.NotificationCount(ctx)
	if err != nil {
		t.ui.Say(err.Error())
		return
	}
	t.ui.Sayf("You have %d unread notification(s).", count)
	if count == 0 {
		return
	}
	switch strings.ToLower(t.ui.Prompt("[m] Mark read  [c] Clear all  [b] Back")) {
	case "m":
		if err := t.session.MarkNotificationsRead(ctx); err != nil {
			t.ui.Say(err.Error())
		}
	case "c":
		if err := t.session.ClearNotifications(ctx); err != nil {
			t.ui.Say(err.Error())
		}
	}
}
