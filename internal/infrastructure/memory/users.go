package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ v *view }

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.v.do(func(st *state) error {
		if !r.v.privileged() {
			return forbidden()
		}
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[user.ID] = *user
		r.v.record(st, entity.AuditActionInsert, "users", user.ID, nil, toUserRow(*user))
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.v.do(func(st *state) error {
		if !r.v.privileged() {
			return forbidden()
		}
		old, ok := st.users[user.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		for id, u := range st.users {
			if id != user.ID && strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		updated := *user
		updated.CreatedAt = old.CreatedAt
		st.users[user.ID] = updated
		r.v.record(st, entity.AuditActionUpdate, "users", user.ID, toUserRow(old), toUserRow(updated))
		return nil
	})
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	var out []*entity.User
	total := 0
	err := r.v.do(func(st *state) error {
		list := make([]entity.User, 0, len(st.users))
		for _, u := range st.users {
			list = append(list, u)
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Name != list[j].Name {
				return list[i].Name < list[j].Name
			}
			return list[i].Email < list[j].Email
		})
		total = len(list)
		for _, u := range page(list, limit, offset) {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	return out, total, err
}

func (r *UserRepo) CountActiveAdmins(ctx context.Context) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.Role == entity.RoleAdmin && u.Status == entity.UserStatusActive {
				n++
			}
		}
		return nil
	})
	return n, err
}
