package service

import (
	"fmt"

	"github.com/Skotchmaster/online_bookstore/internal/repo"
	"github.com/Skotchmaster/online_bookstore/internal/util"
)

const (
	BooksDefaultLimit      = 12
	FeaturedDefaultLimit   = 6
	FeaturedMaxLimit       = 20
	UserOrdersDefaultLimit = 20
	AllOrdersDefaultLimit  = 50
	UsersDefaultLimit      = 50
)

func page(limit, offset, max int) (repo.Page, error) {
	if err := util.CheckPage(limit, offset, max); err != nil {
		return repo.Page{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return repo.Page{Limit: limit, Offset: offset}, nil
}
