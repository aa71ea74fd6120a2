// Package navigation builds the menu and breadcrumb state of admin pages.
package navigation

// Admin sections.
const (
	SectionDashboard = "dashboard"
	SectionContent   = "content"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// MenuItem is one entry of the admin sidebar.
type MenuItem struct {
	Title   string
	URL     string
	Section string
	Page    string
	Active  bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	Menu          []MenuItem
	PageTitle     string
}

// adminMenu is the sidebar of the admin area.
var adminMenu = []MenuItem{
	{Title: "Dashboard", URL: "/admin", Section: SectionDashboard, Page: "overview"},
	{Title: "Categories", URL: "/admin#categories", Section: SectionContent, Page: "categories"},
	{Title: "Blog", URL: "/admin#blog", Section: SectionContent, Page: "blog"},
}

// NewContext creates a new navigation context with the admin menu marked for the active page.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	c := &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
		Menu:          make([]MenuItem, len(adminMenu)),
	}

	copy(c.Menu, adminMenu)

	for i := range c.Menu {
		c.Menu[i].Active = c.IsActive(c.Menu[i].Section, c.Menu[i].Page)
	}

	return c
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
