// Package pje implements the document-source contracts against the TJDFT
// PJE public consultation portal using a headless browser. Everything in
// here is site-specific navigation glue; the selectors below are the
// portal's generated JSF ids and break whenever the portal is redeployed.
package pje

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mvcoutinho/pje-decision-tracker/constants"
	"github.com/mvcoutinho/pje-decision-tracker/internal/common"
	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
	"github.com/mvcoutinho/pje-decision-tracker/internal/source"
)

// Portal selectors, lifted from the consultation page's generated markup.
const (
	xpathNumeroInput = `//*[@id="fPP:numProcesso-inputNumeroProcessoDecoration:numProcesso-inputNumeroProcesso"]`
	xpathSearchBtn   = `//*[@id="fPP:searchProcessos"]`
	xpathResultLink  = `/html/body/div[5]/div/div/div/div[2]/form/div[2]/div/table/tbody/tr/td[1]/a`
	xpathPageCount   = `/html/body/div[5]/div/div/div/div[2]/table/tbody/tr[2]/td/table/tbody/tr/td/div[6]/div[2]/div[2]/div/form/table/tbody/tr[1]/td[3]`
	xpathGridRows    = `//tbody[@id='j_id151:processoDocumentoGridTab:tb']/tr`
	xpathRowAnchor   = `.//td[1]//a`
	paginatorInputID = `j_id151:j_id662:j_id663Input`
	selectorFolha    = `.folha`
)

// Source drives one browser session against the portal. Strictly
// sequential use only; concurrent case fetches would share the session's
// window state.
type Source struct {
	cfg      common.PortalConfig
	logger   *slog.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	tab      *rod.Page
	retry    source.RetryPolicy
}

// NewSource launches the browser and opens the search tab. Call Close at
// run end.
func NewSource(cfg common.PortalConfig, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	l := launcher.New().Headless(cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	tab, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("open search tab: %w", err)
	}
	logger.Info("pje.session.open", "base_url", cfg.BaseURL, "headless", cfg.Headless)
	return &Source{
		cfg:      cfg,
		logger:   logger,
		launcher: l,
		browser:  browser,
		tab:      tab,
		retry:    source.DefaultRetry,
	}, nil
}

// Close releases the browser session.
func (s *Source) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	s.logger.Info("pje.session.close")
	return err
}

// FetchCase searches the portal for the case number and opens its detail
// window. Returns source.ErrNoResults when the result link never shows up.
func (s *Source) FetchCase(ctx context.Context, numeroProcesso string) (source.CaseView, error) {
	tab := s.tab.Context(ctx)

	if err := tab.Navigate(s.cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := tab.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	field, err := tab.Timeout(s.cfg.NavTimeout).ElementX(xpathNumeroInput)
	if err != nil {
		return nil, fmt.Errorf("locate number input: %w", err)
	}
	if err := field.SelectAllText(); err != nil {
		return nil, fmt.Errorf("clear number input: %w", err)
	}
	if err := field.Input(numeroProcesso); err != nil {
		return nil, fmt.Errorf("fill number input: %w", err)
	}

	btn, err := tab.Timeout(s.cfg.NavTimeout).ElementX(xpathSearchBtn)
	if err != nil {
		return nil, fmt.Errorf("locate search button: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("click search: %w", err)
	}
	if err := wait(ctx, s.cfg.SearchDelay); err != nil {
		return nil, err
	}

	link, err := tab.Timeout(s.cfg.NavTimeout).ElementX(xpathResultLink)
	if err != nil {
		// the portal shows an empty grid for unknown numbers; the link
		// simply never appears
		return nil, source.ErrNoResults
	}

	before, err := s.targetIDs()
	if err != nil {
		return nil, err
	}
	if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("open case: %w", err)
	}
	casePage, err := s.waitNewPage(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("case window: %w", err)
	}
	if err := casePage.WaitLoad(); err != nil {
		return nil, fmt.Errorf("case load: %w", err)
	}

	html, err := casePage.HTML()
	if err != nil {
		return nil, fmt.Errorf("case html: %w", err)
	}

	view := &caseView{
		src:      s,
		page:     casePage,
		archived: strings.Contains(html, constants.MarkerArchived),
		pages:    s.readPageCount(casePage),
	}
	s.logger.Info("pje.case.open",
		"case", numeroProcesso, "archived", view.archived, "pages", view.pages)
	return view, nil
}

// readPageCount reads the paginator total; a missing paginator means a
// single page.
func (s *Source) readPageCount(page *rod.Page) int {
	el, err := page.Timeout(s.cfg.DocTimeout).ElementX(xpathPageCount)
	if err != nil {
		return 1
	}
	text, err := el.Text()
	if err != nil {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// targetIDs snapshots the ids of the currently open targets.
func (s *Source) targetIDs() (map[proto.TargetTargetID]struct{}, error) {
	pages, err := s.browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	ids := make(map[proto.TargetTargetID]struct{}, len(pages))
	for _, p := range pages {
		ids[p.TargetID] = struct{}{}
	}
	return ids, nil
}

// waitNewPage polls for a target that was not in the before snapshot.
func (s *Source) waitNewPage(ctx context.Context, before map[proto.TargetTargetID]struct{}) (*rod.Page, error) {
	deadline := time.Now().Add(s.cfg.NavTimeout)
	for {
		pages, err := s.browser.Pages()
		if err != nil {
			return nil, err
		}
		for _, p := range pages {
			if _, ok := before[p.TargetID]; !ok {
				return p.Context(ctx), nil
			}
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("no new window within %s", s.cfg.NavTimeout)
		}
		if err := wait(ctx, 200*time.Millisecond); err != nil {
			return nil, err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// caseView implements source.CaseView over the case detail window.
type caseView struct {
	src      *Source
	page     *rod.Page
	archived bool
	pages    int

	headerText string
}

func (v *caseView) Archived() bool { return v.archived }
func (v *caseView) PageCount() int { return v.pages }

// Metadata reads the case header once and parses it lexically. Every
// field degrades to "" independently.
func (v *caseView) Metadata(ctx context.Context) record.CaseMetadata {
	if v.headerText == "" {
		body, err := v.page.Context(ctx).Timeout(v.src.cfg.DocTimeout).Element("body")
		if err == nil {
			if text, err := body.Text(); err == nil {
				v.headerText = text
			}
		}
	}
	return parseHeader(v.headerText)
}

// Documents lists the grid rows of the given 1-based page, switching the
// paginator first when needed.
func (v *caseView) Documents(ctx context.Context, page int) ([]source.DocumentEntry, error) {
	pg := v.page.Context(ctx)
	if page > 1 {
		// the paginator only reacts to a change event dispatched on its
		// hidden input
		js := fmt.Sprintf(
			`() => { const el = document.getElementById(%q); el.value = %q; el.dispatchEvent(new Event("change")); }`,
			paginatorInputID, strconv.Itoa(page))
		if _, err := pg.Eval(js); err != nil {
			return nil, fmt.Errorf("switch to page %d: %w", page, err)
		}
		if err := wait(ctx, v.src.cfg.PageDelay); err != nil {
			return nil, err
		}
	}

	if _, err := pg.Timeout(v.src.cfg.NavTimeout).ElementX(xpathGridRows); err != nil {
		return nil, fmt.Errorf("document grid: %w", err)
	}
	rows, err := pg.ElementsX(xpathGridRows)
	if err != nil {
		return nil, fmt.Errorf("grid rows: %w", err)
	}

	entries := make([]source.DocumentEntry, 0, len(rows))
	for _, row := range rows {
		anchor, err := row.ElementX(xpathRowAnchor)
		if err != nil {
			continue
		}
		text, err := anchor.Text()
		if err != nil {
			continue
		}
		id, err := anchor.Attribute("id")
		if err != nil || id == nil || *id == "" {
			continue
		}
		entries = append(entries, source.DocumentEntry{
			Ref:        *id,
			AnchorText: strings.TrimSpace(text),
		})
	}
	return entries, nil
}

// OpenDocument clicks the entry's anchor, reads the document text from the
// child window and closes it. Click retries re-resolve the anchor by id
// because the grid re-renders under it; the last resort is a JS-forced
// click that bypasses hit testing.
func (v *caseView) OpenDocument(ctx context.Context, entry source.DocumentEntry) (string, error) {
	pg := v.page.Context(ctx)
	anchorX := fmt.Sprintf(`//*[@id=%q]`, entry.Ref)

	before, err := v.src.targetIDs()
	if err != nil {
		return "", err
	}

	clickErr := v.src.retry.Do(ctx,
		func() error {
			anchor, err := pg.Timeout(v.src.cfg.DocTimeout).ElementX(anchorX)
			if err != nil {
				return err
			}
			if err := anchor.ScrollIntoView(); err != nil {
				return err
			}
			return anchor.Click(proto.InputMouseButtonLeft, 1)
		},
		func() error {
			anchor, err := pg.Timeout(v.src.cfg.DocTimeout).ElementX(anchorX)
			if err != nil {
				return err
			}
			_, err = anchor.Eval(`() => this.click()`)
			return err
		})
	if clickErr != nil {
		return "", fmt.Errorf("click document anchor: %w", clickErr)
	}

	child, err := v.src.waitNewPage(ctx, before)
	if err != nil {
		return "", fmt.Errorf("document window: %w", err)
	}
	defer func() { _ = child.Close() }()

	return v.readDocumentText(child), nil
}

// readDocumentText prefers the .folha content element and falls back to
// the whole body. An empty return means the entry should be skipped.
func (v *caseView) readDocumentText(page *rod.Page) string {
	if el, err := page.Timeout(v.src.cfg.DocTimeout).Element(selectorFolha); err == nil {
		if text, err := el.Text(); err == nil && strings.TrimSpace(text) != "" {
			return text
		}
	}
	body, err := page.Timeout(v.src.cfg.DocTimeout).Element("body")
	if err != nil {
		return ""
	}
	text, err := body.Text()
	if err != nil || strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}

// Close closes the case detail window and returns focus to the search
// tab.
func (v *caseView) Close() error {
	err := v.page.Close()
	if _, aerr := v.src.tab.Activate(); aerr != nil && err == nil {
		err = aerr
	}
	return err
}

var _ source.DocumentSource = (*Source)(nil)
