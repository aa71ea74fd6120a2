package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Dashboard", SectionDashboard, "overview")

	assert.Equal(t, "Dashboard", ctx.PageTitle)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)

	require.Len(t, ctx.Menu, len(adminMenu))

	active := 0
	for _, item := range ctx.Menu {
		if item.Active {
			active++
			assert.Equal(t, "Dashboard", item.Title)
		}
	}

	assert.Equal(t, 1, active)
}

func TestMenuIsCopied(t *testing.T) {
	ctx := NewContext("Blog", SectionContent, "blog")
	ctx.Menu[0].Title = "changed"

	assert.Equal(t, "Dashboard", adminMenu[0].Title)
	assert.False(t, adminMenu[2].Active, "marking a context never touches the shared menu")
}

func TestAddBreadcrumbChaining(t *testing.T) {
	ctx := NewContext("Categories", SectionContent, "categories").
		AddBreadcrumb("Admin", "/admin", false).
		AddBreadcrumb("Categories", "/admin#categories", true)

	require.Len(t, ctx.Breadcrumbs, 2)
	assert.Equal(t, "Admin", ctx.Breadcrumbs[0].Title)
	assert.False(t, ctx.Breadcrumbs[0].Active)
	assert.True(t, ctx.Breadcrumbs[1].Active)
}

func TestIsActive(t *testing.T) {
	ctx := NewContext("Blog", SectionContent, "blog")

	assert.True(t, ctx.IsActive(SectionContent, "blog"))
	assert.False(t, ctx.IsActive(SectionContent, "categories"))
	assert.False(t, ctx.IsActive(SectionDashboard, "blog"))
	assert.True(t, ctx.IsSectionActive(SectionContent))
	assert.False(t, ctx.IsSectionActive(SectionDashboard))
}
