// Package menu drives the interactive console session.  The session is a
// loop over States; each state handler reads what it needs from the
// input, mutates the collection, persists it and returns the next
// state.  Input errors never leave a handler: they are reported and the
// same question is asked again.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-hall-console/internal/model"
	"github.com/iliyamo/cinema-hall-console/internal/queue"
	"github.com/iliyamo/cinema-hall-console/internal/render"
	"github.com/iliyamo/cinema-hall-console/internal/repository"
	"github.com/iliyamo/cinema-hall-console/internal/reservation"
	queue_publisher "github.com/iliyamo/cinema-hall-console/internal/service"
)

// State is one screen of the session.
type State int

// Session states.  Exit ends Run.
const (
	MainMenu State = iota
	CreateHall
	SelectHall
	HallActions
	ReserveOrCancel
	DeleteHall
	Exit
)

var stateNames = [...]string{"MainMenu", "CreateHall", "SelectHall", "HallActions", "ReserveOrCancel", "DeleteHall", "Exit"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

const clearScreen = "\033[H\033[2J"

// Deps bundles what a Controller needs.  Halls, Store, In and Out are
// required; the rest have defaults.
type Deps struct {
	Halls    *model.Collection
	Store    repository.HallStore
	Events   queue_publisher.Publisher
	Renderer *render.Renderer
	Logger   *log.Logger
	In       io.Reader
	Out      io.Writer
	// ClearScreen emits an ANSI clear before each screen.
	ClearScreen bool
}

// Controller owns the hall collection for the lifetime of a session.
type Controller struct {
	halls  *model.Collection
	store  repository.HallStore
	events queue_publisher.Publisher
	render *render.Renderer
	engine reservation.Engine
	log    *log.Logger

	in    *bufio.Reader
	out   io.Writer
	clear bool

	selected string // hall picked in SelectHall
	notice   string // message shown at the top of the next screen
}

// New builds a Controller and panics if a required dependency is nil.
func New(d Deps) *Controller {
	if d.Halls == nil || d.Store == nil || d.In == nil || d.Out == nil {
		panic("menu: nil dependency passed to New")
	}
	c := &Controller{
		halls:  d.Halls,
		store:  d.Store,
		events: d.Events,
		render: d.Renderer,
		log:    d.Logger,
		in:     bufio.NewReader(d.In),
		out:    d.Out,
		clear:  d.ClearScreen,
	}
	if c.events == nil {
		c.events = queue_publisher.Nop{}
	}
	if c.render == nil {
		c.render = render.New(false)
	}
	if c.log == nil {
		c.log = log.New(io.Discard, "", 0)
	}
	return c
}

// Run executes the session from MainMenu until Exit or end of input.
// Only an input read failure is returned; end of input is a normal exit.
func (c *Controller) Run(ctx context.Context) error {
	state := MainMenu
	for state != Exit {
		next, err := c.step(ctx, state)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		state = next
	}
	return nil
}

func (c *Controller) step(ctx context.Context, s State) (State, error) {
	switch s {
	case MainMenu:
		return c.mainMenu()
	case CreateHall:
		return c.createHall(ctx)
	case SelectHall:
		return c.selectHall()
	case HallActions:
		return c.hallActions()
	case ReserveOrCancel:
		return c.reserveOrCancel(ctx)
	case DeleteHall:
		return c.deleteHall(ctx)
	}
	return Exit, nil
}

func (c *Controller) mainMenu() (State, error) {
	c.screen()
	c.printf("Welcome to the Cinema Reservation System\n\n")
	if c.halls.Len() == 0 {
		c.printf("1. Create new cinema hall\n2. Exit\n")
		choice, err := c.prompt("> ")
		if err != nil {
			return Exit, err
		}
		if choice == "1" {
			return CreateHall, nil
		}
		return Exit, nil
	}
	c.printf("1. Interact with existing cinema halls\n2. Create new cinema hall\n3. Exit\n")
	choice, err := c.prompt("> ")
	if err != nil {
		return Exit, err
	}
	switch choice {
	case "1":
		return SelectHall, nil
	case "2":
		return CreateHall, nil
	}
	return Exit, nil
}

func (c *Controller) createHall(ctx context.Context) (State, error) {
	c.screen()
	c.printf("Enter cinema hall size (Width Max %d, Height Max %d)\n", model.MaxWidth, model.MaxHeight)
	width, err := c.promptInt(fmt.Sprintf("Width (1-%d): ", model.MaxWidth), 1, model.MaxWidth)
	if err != nil {
		return Exit, err
	}
	height, err := c.promptInt(fmt.Sprintf("Height (1-%d): ", model.MaxHeight), 1, model.MaxHeight)
	if err != nil {
		return Exit, err
	}
	hall, err := model.NewHall(width, height)
	if err != nil {
		return Exit, err
	}

	c.screen()
	c.draw(hall)
	c.printf("\n1. Save hall\n2. Exit\n")
	choice, err := c.prompt("> ")
	if err != nil {
		return Exit, err
	}
	if choice != "1" {
		ok, err := c.confirm("Are you sure you want to exit without saving? (yes/no): ")
		if err != nil {
			return Exit, err
		}
		if ok {
			return Exit, nil
		}
		return MainMenu, nil
	}

	for {
		name, err := c.prompt("Enter hall name: ")
		if err != nil {
			return Exit, err
		}
		if err := c.halls.Add(name, hall); err != nil {
			c.printf("%s. Try again.\n", capitalize(err.Error()))
			continue
		}
		c.notice = fmt.Sprintf("Hall %s saved.", name)
		c.persist(ctx)
		c.publish(ctx, queue.HallEvent{Type: queue.HallCreated, Hall: name, Width: width, Height: height})
		return MainMenu, nil
	}
}

func (c *Controller) selectHall() (State, error) {
	names := c.halls.Names()
	if len(names) == 0 {
		return MainMenu, nil
	}
	c.screen()
	c.printf("Select a cinema hall:\n")
	for i, name := range names {
		h, _ := c.halls.Get(name)
		c.printf("%d. %s\n", i+1, render.Summary(name, h))
	}
	n, err := c.promptInt("> ", 1, len(names))
	if err != nil {
		return Exit, err
	}
	c.selected = names[n-1]
	return HallActions, nil
}

func (c *Controller) hallActions() (State, error) {
	hall, err := c.halls.Get(c.selected)
	if err != nil {
		return MainMenu, nil
	}
	c.screen()
	c.printf("%s\n\n", c.selected)
	c.draw(hall)
	c.printf("\n1. Reserve/Cancel reservation\n2. Delete hall\n3. Back to main menu\n")
	choice, err := c.prompt("> ")
	if err != nil {
		return Exit, err
	}
	switch choice {
	case "1":
		return ReserveOrCancel, nil
	case "2":
		return DeleteHall, nil
	}
	return MainMenu, nil
}

func (c *Controller) reserveOrCancel(ctx context.Context) (State, error) {
	hall, err := c.halls.Get(c.selected)
	if err != nil {
		return MainMenu, nil
	}
	c.screen()
	c.draw(hall)
	c.printf("\n")
	for {
		raw, err := c.prompt("Enter seat to reserve or cancel (e.g., a1): ")
		if err != nil {
			return Exit, err
		}
		res, err := c.engine.Toggle(hall, raw)
		if err != nil {
			c.printf("Invalid seat: %s. Try again.\n", err)
			continue
		}
		c.notice = res.Action.String()
		c.persist(ctx)
		ev := queue.HallEvent{Type: queue.SeatReserved, Hall: c.selected, Seat: res.Seat.String(), Reserved: hall.ReservedCount()}
		if res.Action == reservation.Canceled {
			ev.Type = queue.SeatCanceled
		}
		c.publish(ctx, ev)
		return HallActions, nil
	}
}

func (c *Controller) deleteHall(ctx context.Context) (State, error) {
	c.screen()
	ok, err := c.confirm(fmt.Sprintf("Are you sure you want to delete the hall %s? (yes/no): ", c.selected))
	if err != nil {
		return Exit, err
	}
	if !ok {
		return MainMenu, nil
	}
	if err := c.halls.Remove(c.selected); err != nil {
		return MainMenu, nil
	}
	c.notice = "Hall deleted."
	c.persist(ctx)
	c.publish(ctx, queue.HallEvent{Type: queue.HallDeleted, Hall: c.selected})
	c.selected = ""
	return MainMenu, nil
}

// persist saves the whole collection.  A failure is reported but the
// session goes on; the next mutation writes the full snapshot again.
func (c *Controller) persist(ctx context.Context) {
	if err := c.store.Save(ctx, c.halls); err != nil {
		c.log.Printf("menu: save halls: %v", err)
		c.notice = strings.TrimSpace(c.notice + " Failed to save data: " + err.Error())
	}
}

func (c *Controller) publish(ctx context.Context, ev queue.HallEvent) {
	// publishers log their own failures
	_ = c.events.PublishHallEvent(ctx, ev)
}

// screen starts a new screen and shows any pending notice.
func (c *Controller) screen() {
	if c.clear {
		c.printf("%s", clearScreen)
	}
	if c.notice != "" {
		c.printf("%s\n\n", c.notice)
		c.notice = ""
	}
}

func (c *Controller) draw(h *model.Hall) {
	if err := c.render.Fprint(c.out, h); err != nil {
		c.log.Printf("menu: draw hall: %v", err)
	}
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// prompt prints label and returns the next input line, trimmed.  Lines
// have no length limit.  It returns io.EOF when input is exhausted.
func (c *Controller) prompt(label string) (string, error) {
	c.printf("%s", label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			c.printf("\n")
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			c.printf("\n")
			return "", io.EOF
		}
		// last line without a trailing newline
	}
	return strings.TrimSpace(line), nil
}

// promptInt asks until the answer is an integer in [lo, hi].
func (c *Controller) promptInt(label string, lo, hi int) (int, error) {
	for {
		line, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		c.printf("Invalid input. Try again.\n")
	}
}

// confirm reports whether the answer is "yes" in any letter case.
func (c *Controller) confirm(label string) (bool, error) {
	line, err := c.prompt(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "yes"), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
