package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/officehub/internal/model"
)

// PostgresGroupRepo はPostgreSQLを使用したグループリポジトリ。
// メンバーはgroup_members結合テーブルで管理する。
type PostgresGroupRepo struct {
	db DBTX
}

// NewPostgresGroupRepo はPostgresGroupRepoを生成する。
func NewPostgresGroupRepo(db DBTX) *PostgresGroupRepo {
	return &PostgresGroupRepo{db: db}
}

// FindByID はメンバー付きでグループを取得する。見つからない場合はnilを返す。
func (r *PostgresGroupRepo) FindByID(ctx context.Context, id string) (*model.Group, error) {
	if !isUUID(id) {
		return nil, nil
	}
	g := &model.Group{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, hangout_id FROM groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.HangoutID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find group by ID: %w", err)
	}

	members, err := r.listMembers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.MemberIDs = members
	return g, nil
}

// ListByHangoutID はハングアウトに属するグループを作成順に返す。
func (r *PostgresGroupRepo) ListByHangoutID(ctx context.Context, hangoutID string) ([]*model.Group, error) {
	if !isUUID(hangoutID) {
		return nil, nil
	}
	return r.listGroups(ctx,
		`SELECT id, hangout_id FROM groups WHERE hangout_id = $1 ORDER BY created_at, id`,
		hangoutID,
	)
}

// ListByAccountID はアカウントが所属するグループを返す。
func (r *PostgresGroupRepo) ListByAccountID(ctx context.Context, accountID string) ([]*model.Group, error) {
	if !isUUID(accountID) {
		return nil, nil
	}
	return r.listGroups(ctx,
		`SELECT g.id, g.hangout_id
		 FROM groups g
		 JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.account_id = $1
		 ORDER BY g.created_at, g.id`,
		accountID,
	)
}

func (r *PostgresGroupRepo) listGroups(ctx context.Context, query string, arg string) ([]*model.Group, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*model.Group
	for rows.Next() {
		g := &model.Group{}
		if err := rows.Scan(&g.ID, &g.HangoutID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	rows.Close()

	// トランザクション上では同時に1つの結果セットしか開けないため、閉じてからメンバーを読む
	for _, g := range groups {
		members, err := r.listMembers(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		g.MemberIDs = members
	}
	return groups, nil
}

func (r *PostgresGroupRepo) listMembers(ctx context.Context, groupID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT account_id FROM group_members WHERE group_id = $1 ORDER BY account_id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var accountID string
		if err := rows.Scan(&accountID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, accountID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// Create はグループとメンバーを作成する。IDが空の場合は採番する。
func (r *PostgresGroupRepo) Create(ctx context.Context, group *model.Group) error {
	if group.ID == "" {
		group.ID = newID()
	}
	if !isUUID(group.HangoutID) {
		return model.NewHangoutNotFoundError(group.HangoutID)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO groups (id, hangout_id) VALUES ($1, $2)`,
		group.ID, group.HangoutID,
	)
	if err != nil {
		return translateError(err, "insert group")
	}

	for _, accountID := range group.MemberIDs {
		if err := r.AddMember(ctx, group.ID, accountID); err != nil {
			return err
		}
	}
	return nil
}

// AddMember はメンバーを追加する。既に所属している場合は何もしない。
func (r *PostgresGroupRepo) AddMember(ctx context.Context, groupID, accountID string) error {
	if !isUUID(groupID) {
		return model.NewGroupNotFoundError(groupID)
	}
	if !isUUID(accountID) {
		return model.NewReferenceNotFoundError(accountID)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO group_members (group_id, account_id) VALUES ($1, $2)
		 ON CONFLICT (group_id, account_id) DO NOTHING`,
		groupID, accountID,
	)
	return translateError(err, "insert group member")
}

// RemoveMember はメンバーを外す。所属していない場合も成功とする。
func (r *PostgresGroupRepo) RemoveMember(ctx context.Context, groupID, accountID string) error {
	if !isUUID(groupID) || !isUUID(accountID) {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND account_id = $2`,
		groupID, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group member: %w", err)
	}
	return nil
}

// DeleteByID はグループを削除する。
func (r *PostgresGroupRepo) DeleteByID(ctx context.Context, id string) error {
	if !isUUID(id) {
		return model.NewGroupNotFoundError(id)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireAffected(result, model.NewGroupNotFoundError(id))
}

// compile-time interface check
var _ GroupRepository = (*PostgresGroupRepo)(nil)
