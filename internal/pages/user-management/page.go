// Package usermanagement lists platform end users with free-text search.
package usermanagement

import (
	"context"
	"strconv"

	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/listview"
	"marketplace-admin/internal/models"
)

// API is the slice of the client this page calls.
type API interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

type Page struct {
	list *listview.List[models.User]
	api  API
}

func New(apiClient API, log logger.Logger) *Page {
	list := listview.New("user-management",
		func(u models.User) string { return strconv.FormatInt(u.ID, 10) },
		func(u models.User) []string {
			return []string{u.Name, u.PhoneNumber, u.Email, strconv.FormatInt(u.ID, 10)}
		},
		log)

	return &Page{list: list, api: apiClient}
}

func (p *Page) Refresh(ctx context.Context) error {
	return p.list.Load(ctx, p.api.ListUsers)
}

func (p *Page) Visible() []models.User { return p.list.Visible() }
func (p *Page) Error() string          { return p.list.Error() }
func (p *Page) SetSearch(term string)  { p.list.SetSearch(term) }
func (p *Page) Close()                 { p.list.Close() }
