package collection

import "covid-booking/internal/data/entity"

// UserList is the in-memory mirror of user records, used to resolve staff
// directories without refetching every record individually.
type UserList struct {
	users []*entity.User
}

func NewUserList() *UserList {
	return &UserList{}
}

func (l *UserList) Add(user *entity.User) {
	l.users = append(l.users, user)
}

func (l *UserList) FindByID(id string) *entity.User {
	for _, user := range l.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func (l *UserList) FindByUserName(userName string) *entity.User {
	for _, user := range l.users {
		if user.UserName == userName {
			return user
		}
	}
	return nil
}

// Update replaces the stored record with the same id, adding it when it
// was not known yet.
func (l *UserList) Update(user *entity.User) {
	for i, existing := range l.users {
		if existing.ID == user.ID {
			l.users[i] = user
			return
		}
	}
	l.users = append(l.users, user)
}

// SiteStaff returns every user staffing a testing site.
func (l *UserList) SiteStaff() []*entity.User {
	var staff []*entity.User
	for _, user := range l.users {
		if user.SiteStaff() {
			staff = append(staff, user)
		}
	}
	return staff
}
