// Package handler contains the HTTP handlers for the application.
package handler

import "dentist/internal/domain/entity"

// UserView is the client facing projection of a user. The password hash
// and the session tokens are never part of it.
type UserView struct {
	UserName   string `json:"userName"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Telephone  string `json:"telephone"`
	FiscalCode string `json:"fiscalCode"`
	BornDate   string `json:"bornDate"`
	Role       string `json:"role"`
}

// UserListView is the body of the list endpoint.
type UserListView struct {
	Count int         `json:"count"`
	Data  []*UserView `json:"data"`
}

func newUserView(u *entity.User) *UserView {
	return &UserView{
		UserName:   u.UserName,
		Name:       u.Name,
		Surname:    u.Surname,
		Telephone:  u.Telephone,
		FiscalCode: u.FiscalCode,
		BornDate:   u.BornDate,
		Role:       u.Role.String(),
	}
}

func newUserListView(list *entity.UserList) *UserListView {
	data := make([]*UserView, 0, len(list.Data))
	for _, u := range list.Data {
		data = append(data, newUserView(u))
	}

	return &UserListView{Count: len(data), Data: data}
}
