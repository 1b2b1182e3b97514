// Package shell implements the interactive, menu-driven console.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"housing-info/knowledge"
	"housing-info/services"
	"housing-info/source"
	"housing-info/utils"
)

const clearScreen = "\033[H\033[2J"

// Options configures a Shell.
type Options struct {
	Catalog       *services.Catalog
	KnowledgeBase services.TextSink
	KBOptions     knowledge.Options
	MarkupPercent float64
	Renderer      *Renderer
	Logger        *utils.Logger
	// ClearScreen clears the terminal before each menu, as a TTY session expects.
	ClearScreen bool
}

type lineResult struct {
	line string
	err  error
}

// Shell owns the console input for the lifetime of one interactive session.
type Shell struct {
	opts Options
	in   *bufio.Reader
	out  *Renderer
	log  *utils.Logger

	// pending is the read still in flight, e.g. one left by an interrupted
	// prompt; the next prompt consumes it instead of starting a second reader.
	pending chan lineResult
}

// New creates a Shell reading selections from in.
func New(in io.Reader, opts Options) *Shell {
	return &Shell{
		opts: opts,
		in:   bufio.NewReader(in),
		out:  opts.Renderer,
		log:  opts.Logger,
	}
}

var menuItems = []string{
	"Display all housing information",
	"Search houses by price range",
	"Count furnished houses",
	"Sort housing information",
	"", // markup, label depends on the configured percentage
	"Generate Prolog Knowledge Base",
	"Exit",
}

func (s *Shell) markupLabel() string {
	return fmt.Sprintf("Apply %s markup to prices", percentLabel(s.opts.MarkupPercent))
}

func (s *Shell) clear() {
	if s.opts.ClearScreen {
		s.out.Printf("%s", clearScreen)
	}
}

func (s *Shell) displayMenu() {
	s.clear()
	s.out.Println("\n=== Housing Information System ===")
	for i, item := range menuItems {
		if i == 4 {
			item = s.markupLabel()
		}
		s.out.Printf("%d. %s\n", i+1, item)
	}
	s.out.Println("================================")
}

// readLine waits for the next console line or for ctx to end. The read
// itself runs in a goroutine that exits once input arrives or stdin closes.
func (s *Shell) readLine(ctx context.Context) (string, error) {
	if s.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := s.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		s.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-s.pending:
		s.pending = nil
		return res.line, res.err
	}
}

// prompt prints label and reads one trimmed line. io.EOF is returned only
// when no input at all was read.
func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	s.out.Printf("%s", label)
	line, err := s.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) pause(ctx context.Context) error {
	_, err := s.prompt(ctx, "\nPress Enter to continue...")
	return err
}

// Run loops until the user exits, input ends, or ctx is cancelled. A
// cancelled prompt returns at once. Only an input failure other than
// end-of-file is returned as an error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return s.finish(err)
		}

		s.displayMenu()
		choice, err := s.prompt(ctx, "\nPlease select an option (1-7): ")
		if err != nil {
			return s.finish(err)
		}

		s.clear()
		if choice == "7" {
			s.out.Println("\nThank you for using Housing Information System!")
			return nil
		}

		if err := s.dispatch(ctx, choice); err != nil {
			return s.finish(err)
		}
		if err := ctx.Err(); err != nil {
			return s.finish(err)
		}
		if err := s.pause(ctx); err != nil {
			return s.finish(err)
		}
	}
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.out.Println("\nInterrupted.")
		return nil
	}
	if errors.Is(err, io.EOF) {
		s.out.Println("\nThank you for using Housing Information System!")
		return nil
	}
	return fmt.Errorf("shell: read input: %w", err)
}

// dispatch runs one menu selection. Operation failures are reported and
// swallowed; only console input errors are returned.
func (s *Shell) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		s.out.Title("Displaying All Housing Information")
		houses, err := s.opts.Catalog.All(ctx)
		if err != nil {
			s.report("displaying housing data", err)
			return nil
		}
		s.out.Listing(houses)

	case "2":
		s.out.Title("Search Houses by Price Range")
		minPrice, err := s.prompt(ctx, "Enter minimum price: ")
		if err != nil {
			return err
		}
		maxPrice, err := s.prompt(ctx, "Enter maximum price: ")
		if err != nil {
			return err
		}
		res, err := s.opts.Catalog.Search(ctx, minPrice, maxPrice)
		if err != nil {
			s.report("searching houses", err)
			return nil
		}
		s.out.SearchResult(res)

	case "3":
		s.out.Title("Furnished Houses Count")
		report, err := s.opts.Catalog.CountFurnishing(ctx)
		if err != nil {
			s.report("counting furnished houses", err)
			return nil
		}
		s.out.Furnishing(report)

	case "4":
		s.out.Title("Sort Housing Information")
		return s.sortMenu(ctx)

	case "5":
		s.out.Title(fmt.Sprintf("Housing Prices with %s Markup", percentLabel(s.opts.MarkupPercent)))
		res, err := s.opts.Catalog.Markup(ctx, s.opts.MarkupPercent)
		if err != nil {
			s.report("applying markup", err)
			return nil
		}
		s.out.Markup(res)

	case "6":
		s.out.Title("Generating Prolog Knowledge Base")
		res, err := s.opts.Catalog.ExportKnowledgeBase(ctx, s.opts.KnowledgeBase, s.opts.KBOptions)
		if err != nil {
			s.report("generating knowledge base", err)
			return nil
		}
		s.out.Export(res)

	default:
		s.out.Warn("\nInvalid option! Please select a number between 1 and 7.")
	}
	return nil
}

func (s *Shell) sortMenu(ctx context.Context) error {
	s.out.Println("Sort by:")
	for i, key := range services.SortKeys {
		s.out.Printf("%d. %s\n", i+1, key.MenuLabel())
	}

	choice, err := s.prompt(ctx, "\nEnter your choice (1-5): ")
	if err != nil {
		return err
	}
	key, err := services.SortKeyFromChoice(choice)
	if err != nil {
		s.report("sorting houses", err)
		return nil
	}

	houses, err := s.opts.Catalog.Sort(ctx, key)
	if err != nil {
		s.report("sorting houses", err)
		return nil
	}
	s.out.Sorted(key, houses)
	return nil
}

// report prints a failed operation in user terms and logs the detail.
func (s *Shell) report(action string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, context.Canceled):
		s.log.Debug("[shell] %s: %v", action, err)
	case errors.As(err, &verr):
		s.out.Warn("\n%s", verr.UserMessage())
		s.log.Debug("[shell] %s: %v", action, err)
	case errors.Is(err, source.ErrRead):
		s.out.Warn("\nError reading housing data: %v", err)
		s.log.Error("[shell] %s: %v", action, err)
	default:
		s.out.Warn("\nError %s: %v", action, err)
		s.log.Error("[shell] %s: %v", action, err)
	}
}
