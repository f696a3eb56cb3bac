package navheader

import (
	"log/slog"

	"github.com/vango-dev/navheader/pkg/nav"
	"github.com/vango-dev/navheader/pkg/vango"
	"github.com/vango-dev/navheader/pkg/vdom"
)

// ButtonLabel is the fixed text of the call-to-action button.
const ButtonLabel = "Button"

// LogoSize is the rendered width and height of the logo.
const LogoSize = 50

// Props configures a Header.
type Props struct {
	// Logo is the image source of the logo.
	Logo string

	// MenuItems are the top-level entries in display order. May be empty.
	MenuItems []MenuEntry

	// OnClick runs when the action button is clicked. Nil is a no-op.
	OnClick func()
}

// Header is a mounted navigation header. Each Header owns its own
// disclosure state; nothing is shared between instances.
type Header struct {
	props     Props
	navigator nav.Navigator
	open      *vango.Signal[Disclosure]
	logger    *slog.Logger
}

var _ vdom.Component = (*Header)(nil)

// Option configures a Header.
type Option func(*Header)

// WithLogger sets the logger navigations and toggles are traced to.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Header) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New mounts a header. navigator receives every navigation request the
// header makes and must not be nil.
func New(props Props, navigator nav.Navigator, opts ...Option) *Header {
	if navigator == nil {
		panic("navheader: nil navigator")
	}
	h := &Header{
		props:     props,
		navigator: navigator,
		open:      vango.NewSignal(Closed()),
		logger:    slog.Default().With("component", "navheader"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Props returns the configuration the header was mounted with.
func (h *Header) Props() Props { return h.props }

// State returns the current disclosure state.
func (h *Header) State() Disclosure { return h.open.Get() }

// Subscribe registers l to be notified when the disclosure state changes.
func (h *Header) Subscribe(l vango.Listener) (unsubscribe func()) {
	return h.open.Subscribe(l)
}

func (h *Header) navigate(path, source string) {
	h.logger.Debug("navigate", "path", path, "source", source)
	h.navigator.Navigate(path)
}

func (h *Header) toggle(i int) {
	h.open.Update(func(d Disclosure) Disclosure { return d.Toggle(i) })
	h.logger.Debug("toggle submenu", "index", i, "state", h.open.Get().String())
}

func (h *Header) clickButton() {
	if h.props.OnClick != nil {
		h.props.OnClick()
	}
}

const (
	rootClass    = "bg-white shadow-md mx-[30px] rounded-md px-4"
	barClass     = "container mx-auto px-4 py-2 flex justify-between items-center"
	menuClass    = "lg:flex space-x-4"
	entryClass   = "relative group hover:bg-slate-200 p-3 rounded-lg"
	labelClass   = "text-gray-700 hover:text-gray-900 flex items-center cursor-pointer"
	popoverClass = "absolute w-[120px] left-[-10px] mt-[30px] bg-white shadow-md justify-center items-center text-center rounded-xl"
	itemClass    = "block px-4 py-2 text-gray-700 hover:bg-gray-100"
	buttonClass  = "bg-gray-700 text-white px-4 py-2 rounded-lg hover:bg-gray-600"
	chevronClass = "ml-1 fill-current transition-transform duration-200"
)

// Render implements vdom.Component.
func (h *Header) Render() *vdom.VNode {
	state := h.open.Get()

	return vdom.Header(vdom.Class(rootClass), vdom.Data("component", "navheader"),
		vdom.Div(vdom.Class(barClass),
			vdom.Div(vdom.Class("flex items-center"),
				vdom.Img(
					vdom.Src(h.props.Logo),
					vdom.Alt("Logo"),
					vdom.Width(LogoSize),
					vdom.Height(LogoSize),
					vdom.Class("cursor-pointer"),
					vdom.OnClick(func() { h.navigate("/", "logo") }),
				),
			),
			vdom.Nav(vdom.Class(menuClass),
				vdom.Range(h.props.MenuItems, func(entry MenuEntry, i int) *vdom.VNode {
					return h.renderEntry(entry, i, state)
				}),
			),
			vdom.Button(vdom.Type("button"), vdom.Class(buttonClass),
				vdom.Text(ButtonLabel),
				vdom.OnClick(h.clickButton),
			),
		),
	)
}

func (h *Header) renderEntry(entry MenuEntry, i int, state Disclosure) *vdom.VNode {
	switch e := entry.(type) {
	case *Leaf:
		if e == nil {
			return nil
		}
		return h.renderEntry(*e, i, state)

	case *Parent:
		if e == nil {
			return nil
		}
		return h.renderEntry(*e, i, state)

	case Leaf:
		return vdom.Div(vdom.Key(i), vdom.Class(entryClass),
			vdom.A(vdom.Class(labelClass), vdom.Href(e.Path()),
				vdom.Text(e.Label),
				vdom.OnClick(func() { h.navigate(e.Path(), "menu") }),
			),
		)

	case Parent:
		open := state.IsOpenAt(i)
		return vdom.Div(vdom.Key(i), vdom.Class(entryClass),
			vdom.A(vdom.Class(labelClass), vdom.Role("button"),
				vdom.AriaHasPopup("menu"),
				vdom.AriaExpanded(open),
				vdom.Text(e.Label),
				chevron(open),
				vdom.OnClick(func() { h.toggle(i) }),
			),
			vdom.When(open, func() *vdom.VNode { return h.renderSubMenu(e) }),
		)

	default:
		return nil
	}
}

func (h *Header) renderSubMenu(p Parent) *vdom.VNode {
	return vdom.Div(vdom.Class(popoverClass), vdom.Role("menu"),
		vdom.Range(p.SubMenu.Items, func(item SubMenuEntry, j int) *vdom.VNode {
			path := p.ItemPath(item)
			return vdom.A(vdom.Key(j), vdom.Class(itemClass), vdom.Role("menuitem"), vdom.Href(path),
				vdom.Text(item.Title),
				vdom.OnClick(func() { h.navigate(path, "submenu") }),
			)
		}),
	)
}

// chevron is the disclosure indicator, rotated while open.
func chevron(open bool) *vdom.VNode {
	rotate := ""
	if open {
		rotate = "rotate-90"
	}
	return vdom.Svg(
		vdom.Class(chevronClass, rotate),
		vdom.Xmlns("http://www.w3.org/2000/svg"),
		vdom.Width(20),
		vdom.Height(20),
		vdom.ViewBox("0 0 24 24"),
		vdom.AriaHidden(true),
		vdom.SvgPath(vdom.D("M10 7l5 5-5 5V7z")),
	)
}
