// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-item-keeper/models"
)

const (
	usersTable = "users"
	itemsTable = "items"
)

var (
	userColumns = []string{"id", "email", "username", "password_hash", "is_active", "is_superuser", "created_at"}
	itemColumns = []string{"id", "title", "description", "owner_id", "created_at"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns("email", "username", "password_hash", "is_active", "is_superuser").
		Values(user.Email, user.Username, user.PasswordHash, user.IsActive, user.IsSuperuser).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateUserQuery renders a SET clause only for the non-nil fields of
// patch. The plaintext Password is never written; PasswordHash is.
func buildUpdateUserQuery(b sq.StatementBuilderType, id int64, patch models.UserPatch) (string, []any, error) {
	set := make(map[string]any, 5)
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Username != nil {
		set["username"] = *patch.Username
	}
	if patch.PasswordHash != nil {
		set["password_hash"] = *patch.PasswordHash
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}
	if patch.IsSuperuser != nil {
		set["is_superuser"] = *patch.IsSuperuser
	}
	if len(set) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", ErrBuildingSQLQuery)
	}

	query, args, err := b.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteQuery(b sq.StatementBuilderType, table string, id int64) (string, []any, error) {
	query, args, err := b.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListQuery selects one page of table ordered by id, optionally
// restricted by where.
func buildListQuery(b sq.StatementBuilderType, table string, columns []string, where sq.Sqlizer, page models.Page) (string, []any, error) {
	page = page.Normalize()

	builder := b.Select(columns...).From(table)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.
		OrderBy("id").
		Limit(page.Limit).
		Offset(page.Skip).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountQuery(b sq.StatementBuilderType, table string, where sq.Sqlizer) (string, []any, error) {
	builder := b.Select("COUNT(*)").From(table)
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertItemQuery(b sq.StatementBuilderType, item models.Item) (string, []any, error) {
	query, args, err := b.Insert(itemsTable).
		Columns("title", "description", "owner_id").
		Values(item.Title, item.Description, item.OwnerID).
		Suffix(returning(itemColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectItemQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := b.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateItemQuery writes the title when present and the description
// when set, including an explicit NULL for a cleared description.
func buildUpdateItemQuery(b sq.StatementBuilderType, id int64, patch models.ItemPatch) (string, []any, error) {
	set := make(map[string]any, 2)
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description.Set {
		set["description"] = patch.Description.Ptr()
	}
	if len(set) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", ErrBuildingSQLQuery)
	}

	query, args, err := b.Update(itemsTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returning(itemColumns)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
