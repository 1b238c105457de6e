// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/raid-toto/db"
	"github.com/danielhkuo/raid-toto/models"
)

// SQLStore implements Repository on database/sql. Queries are written with
// ? placeholders and rebound to $N for PostgreSQL.
type SQLStore struct {
	db       *sql.DB
	postgres bool
	now      func() time.Time
}

// NewSQLStore wraps an open connection created by db.Open.
func NewSQLStore(conn *sql.DB, dbType string) *SQLStore {
	return &SQLStore{
		db:       conn,
		postgres: dbType == db.TypePostgres,
		now:      time.Now,
	}
}

var _ Repository = (*SQLStore)(nil)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func newID() string {
	return uuid.NewString()
}

func (s *SQLStore) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

type scanner interface {
	Scan(dest ...any) error
}

// Members

func (s *SQLStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.query(ctx, `SELECT id, name, created_at FROM members ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		var created int64
		if err := rows.Scan(&m.ID, &m.Name, &created); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.CreatedAt = fromMillis(created)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *SQLStore) GetMember(ctx context.Context, id string) (models.Member, error) {
	var m models.Member
	var created int64
	err := s.queryRow(ctx, `SELECT id, name, created_at FROM members WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("get member: %w", err)
	}
	m.CreatedAt = fromMillis(created)
	return m, nil
}

func (s *SQLStore) CreateMember(ctx context.Context, name string) (models.Member, error) {
	m := models.Member{ID: newID(), Name: name, CreatedAt: fromMillis(toMillis(s.now()))}
	_, err := s.exec(ctx, `INSERT INTO members (id, name, created_at) VALUES (?, ?, ?)`,
		m.ID, m.Name, toMillis(m.CreatedAt))
	if err != nil {
		return models.Member{}, fmt.Errorf("create member: %w", err)
	}
	return m, nil
}

// Rounds

const roundColumns = `id, toto_type, floor_number, week_start, deadline, status, actual_result, created_at`

func scanRound(row scanner) (models.Round, error) {
	var r models.Round
	var typ string
	var floor sql.NullInt64
	var deadline sql.NullInt64
	var result sql.NullString
	var created int64
	if err := row.Scan(&r.ID, &typ, &floor, &r.WeekStart, &deadline, &r.Status, &result, &created); err != nil {
		return models.Round{}, err
	}
	r.Type = models.RoundType(typ)
	if floor.Valid {
		f := int(floor.Int64)
		r.Floor = &f
	}
	if deadline.Valid {
		d := fromMillis(deadline.Int64)
		r.Deadline = &d
	}
	if result.Valid {
		v := result.String
		r.ActualResult = &v
	}
	r.CreatedAt = fromMillis(created)
	return r, nil
}

// CreateRound inserts an open round. A zero CreatedAt is stamped with the
// current time.
func (s *SQLStore) CreateRound(ctx context.Context, round models.Round) (models.Round, error) {
	round.ID = newID()
	round.Status = models.RoundOpen
	round.ActualResult = nil
	if round.CreatedAt.IsZero() {
		round.CreatedAt = s.now()
	}
	round.CreatedAt = fromMillis(toMillis(round.CreatedAt))

	var floor, deadline any
	if round.Floor != nil {
		floor = int64(*round.Floor)
	}
	if round.Deadline != nil {
		d := fromMillis(toMillis(*round.Deadline))
		round.Deadline = &d
		deadline = toMillis(d)
	}

	_, err := s.exec(ctx, `
		INSERT INTO toto_rounds (id, toto_type, floor_number, week_start, deadline, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, round.ID, string(round.Type), floor, round.WeekStart, deadline, round.Status, toMillis(round.CreatedAt))
	if err != nil {
		return models.Round{}, fmt.Errorf("create round: %w", err)
	}
	return round, nil
}

func (s *SQLStore) GetRound(ctx context.Context, id string) (models.Round, error) {
	r, err := scanRound(s.queryRow(ctx, `SELECT `+roundColumns+` FROM toto_rounds WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Round{}, ErrNotFound
	}
	if err != nil {
		return models.Round{}, fmt.Errorf("get round: %w", err)
	}
	return r, nil
}

func (s *SQLStore) ListRounds(ctx context.Context, q RoundQuery) ([]models.Round, error) {
	query, args := listQuery(`SELECT `+roundColumns+` FROM toto_rounds`, q.Statuses, q.Newest, q.Limit)
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	rounds := []models.Round{}
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

// listQuery appends the status filter, creation ordering, and limit shared
// by round and session listings.
func listQuery(base string, statuses []string, newest bool, limit int) (string, []any) {
	var args []any
	query := base
	if len(statuses) > 0 {
		query += ` WHERE status IN (` + placeholders(len(statuses)) + `)`
		args = append(args, stringArgs(statuses)...)
	}
	if newest {
		query += ` ORDER BY created_at DESC, id DESC`
	} else {
		query += ` ORDER BY created_at ASC, id ASC`
	}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return query, args
}

func (s *SQLStore) AdvanceRound(ctx context.Context, id, status string, result *string) (models.Round, error) {
	from := models.RoundStatusBefore(status)
	if len(from) == 0 {
		return models.Round{}, fmt.Errorf("advance round to %q: %w", status, ErrConflict)
	}

	args := []any{status, result, id}
	args = append(args, stringArgs(from)...)
	res, err := s.exec(ctx, `
		UPDATE toto_rounds
		SET status = ?, actual_result = COALESCE(?, actual_result)
		WHERE id = ? AND status IN (`+placeholders(len(from))+`)
	`, args...)
	if err != nil {
		return models.Round{}, fmt.Errorf("advance round: %w", err)
	}
	if err := s.checkAdvanced(res, func() error {
		_, err := s.GetRound(ctx, id)
		return err
	}); err != nil {
		return models.Round{}, err
	}
	return s.GetRound(ctx, id)
}

// checkAdvanced turns a zero-row status update into ErrNotFound or ErrConflict.
func (s *SQLStore) checkAdvanced(res sql.Result, exists func() error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := exists(); err != nil {
		return err
	}
	return ErrConflict
}

// Bets

const betSelect = `
	SELECT b.id, b.round_id, b.member_id, m.name, b.bet_value, b.created_at, b.updated_at
	FROM toto_bets b
	JOIN members m ON m.id = b.member_id`

func scanBet(row scanner) (models.Bet, error) {
	var b models.Bet
	var created, updated int64
	if err := row.Scan(&b.ID, &b.RoundID, &b.MemberID, &b.MemberName, &b.Value, &created, &updated); err != nil {
		return models.Bet{}, err
	}
	b.CreatedAt = fromMillis(created)
	b.UpdatedAt = fromMillis(updated)
	return b, nil
}

func (s *SQLStore) ListBets(ctx context.Context, q BetQuery) ([]models.Bet, error) {
	var where []string
	var args []any
	if q.RoundID != "" {
		where = append(where, `b.round_id = ?`)
		args = append(args, q.RoundID)
	}
	if q.MemberID != "" {
		where = append(where, `b.member_id = ?`)
		args = append(args, q.MemberID)
	}
	query := betSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY b.created_at, b.id`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	bets := []models.Bet{}
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

// UpsertBet places or replaces a member's bet on a round.
func (s *SQLStore) UpsertBet(ctx context.Context, roundID, memberID, value string) (models.Bet, error) {
	now := toMillis(s.now())
	_, err := s.exec(ctx, `
		INSERT INTO toto_bets (id, round_id, member_id, bet_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (round_id, member_id)
		DO UPDATE SET bet_value = excluded.bet_value, updated_at = excluded.updated_at
	`, newID(), roundID, memberID, value, now, now)
	if err != nil {
		return models.Bet{}, fmt.Errorf("upsert bet: %w", err)
	}

	b, err := scanBet(s.queryRow(ctx, betSelect+` WHERE b.round_id = ? AND b.member_id = ?`, roundID, memberID))
	if err != nil {
		return models.Bet{}, fmt.Errorf("read back bet: %w", err)
	}
	return b, nil
}

// Sessions

const sessionColumns = `id, raid_date, status, created_at`

func scanSession(row scanner) (models.Session, error) {
	var sess models.Session
	var created int64
	if err := row.Scan(&sess.ID, &sess.RaidDate, &sess.Status, &created); err != nil {
		return models.Session{}, err
	}
	sess.CreatedAt = fromMillis(created)
	return sess, nil
}

func (s *SQLStore) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	session.ID = newID()
	session.Status = models.SessionVoting
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now()
	}
	session.CreatedAt = fromMillis(toMillis(session.CreatedAt))

	_, err := s.exec(ctx, `
		INSERT INTO award_sessions (id, raid_date, status, created_at)
		VALUES (?, ?, ?, ?)
	`, session.ID, session.RaidDate, session.Status, toMillis(session.CreatedAt))
	if err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (models.Session, error) {
	sess, err := scanSession(s.queryRow(ctx, `SELECT `+sessionColumns+` FROM award_sessions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

func (s *SQLStore) ListSessions(ctx context.Context, q SessionQuery) ([]models.Session, error) {
	query, args := listQuery(`SELECT `+sessionColumns+` FROM award_sessions`, q.Statuses, q.Newest, q.Limit)
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *SQLStore) AdvanceSession(ctx context.Context, id, status string) (models.Session, error) {
	from := models.SessionStatusBefore(status)
	if len(from) == 0 {
		return models.Session{}, fmt.Errorf("advance session to %q: %w", status, ErrConflict)
	}

	args := append([]any{status, id}, stringArgs(from)...)
	res, err := s.exec(ctx, `
		UPDATE award_sessions SET status = ?
		WHERE id = ? AND status IN (`+placeholders(len(from))+`)
	`, args...)
	if err != nil {
		return models.Session{}, fmt.Errorf("advance session: %w", err)
	}
	if err := s.checkAdvanced(res, func() error {
		_, err := s.GetSession(ctx, id)
		return err
	}); err != nil {
		return models.Session{}, err
	}
	return s.GetSession(ctx, id)
}

// Votes

const voteSelect = `
	SELECT v.id, v.session_id, v.voter_id, voter.name, v.category, v.nominee_id, nominee.name,
	       v.comment, v.created_at, v.updated_at
	FROM award_votes v
	JOIN members voter ON voter.id = v.voter_id
	JOIN members nominee ON nominee.id = v.nominee_id`

func scanVote(row scanner) (models.Vote, error) {
	var v models.Vote
	var created, updated int64
	if err := row.Scan(&v.ID, &v.SessionID, &v.VoterID, &v.VoterName, &v.Category,
		&v.NomineeID, &v.NomineeName, &v.Comment, &created, &updated); err != nil {
		return models.Vote{}, err
	}
	v.CreatedAt = fromMillis(created)
	v.UpdatedAt = fromMillis(updated)
	return v, nil
}

func (s *SQLStore) ListVotes(ctx context.Context, q VoteQuery) ([]models.Vote, error) {
	var where []string
	var args []any
	if q.SessionID != "" {
		where = append(where, `v.session_id = ?`)
		args = append(args, q.SessionID)
	}
	if q.VoterID != "" {
		where = append(where, `v.voter_id = ?`)
		args = append(args, q.VoterID)
	}
	if q.NomineeID != "" {
		where = append(where, `v.nominee_id = ?`)
		args = append(args, q.NomineeID)
	}
	query := voteSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY v.created_at, v.id`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// UpsertVote casts or replaces a voter's pick for one category. Recasting
// for the same nominee keeps the original cast time; switching nominee
// restarts it, since tie-breaks go to the nominee voted for first.
func (s *SQLStore) UpsertVote(ctx context.Context, vote models.Vote) (models.Vote, error) {
	now := s.now()
	created := vote.CreatedAt
	if created.IsZero() {
		created = now
	}
	_, err := s.exec(ctx, `
		INSERT INTO award_votes (id, session_id, voter_id, category, nominee_id, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, voter_id, category)
		DO UPDATE SET
			created_at = CASE WHEN award_votes.nominee_id = excluded.nominee_id
				THEN award_votes.created_at ELSE excluded.created_at END,
			nominee_id = excluded.nominee_id,
			comment = excluded.comment,
			updated_at = excluded.updated_at
	`, newID(), vote.SessionID, vote.VoterID, vote.Category, vote.NomineeID, vote.Comment,
		toMillis(created), toMillis(now))
	if err != nil {
		return models.Vote{}, fmt.Errorf("upsert vote: %w", err)
	}

	v, err := scanVote(s.queryRow(ctx,
		voteSelect+` WHERE v.session_id = ? AND v.voter_id = ? AND v.category = ?`,
		vote.SessionID, vote.VoterID, vote.Category))
	if err != nil {
		return models.Vote{}, fmt.Errorf("read back vote: %w", err)
	}
	return v, nil
}

// Achievement grants

const grantSelect = `
	SELECT a.id, a.member_id, m.name, a.achievement_key, a.achieved_at
	FROM achievements a
	JOIN members m ON m.id = a.member_id`

func scanGrant(row scanner) (models.Grant, error) {
	var g models.Grant
	var achieved int64
	if err := row.Scan(&g.ID, &g.MemberID, &g.MemberName, &g.Key, &achieved); err != nil {
		return models.Grant{}, err
	}
	g.AchievedAt = fromMillis(achieved)
	return g, nil
}

func (s *SQLStore) GrantAchievement(ctx context.Context, memberID, key string) (models.Grant, bool, error) {
	res, err := s.exec(ctx, `
		INSERT INTO achievements (id, member_id, achievement_key, achieved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (member_id, achievement_key) DO NOTHING
	`, newID(), memberID, key, toMillis(s.now()))
	if err != nil {
		return models.Grant{}, false, fmt.Errorf("grant achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Grant{}, false, fmt.Errorf("grant achievement rows affected: %w", err)
	}

	g, err := scanGrant(s.queryRow(ctx, grantSelect+` WHERE a.member_id = ? AND a.achievement_key = ?`, memberID, key))
	if err != nil {
		return models.Grant{}, false, fmt.Errorf("read back grant: %w", err)
	}
	return g, n > 0, nil
}

// ListGrants returns grants newest first. An empty memberID lists everyone's.
func (s *SQLStore) ListGrants(ctx context.Context, memberID string) ([]models.Grant, error) {
	query := grantSelect
	var args []any
	if memberID != "" {
		query += ` WHERE a.member_id = ?`
		args = append(args, memberID)
	}
	query += ` ORDER BY a.achieved_at DESC, a.id`

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()

	grants := []models.Grant{}
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// Timeline

func (s *SQLStore) ListPosts(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
		SELECT p.id, p.member_id, m.name, p.message, p.created_at
		FROM timeline p
		JOIN members m ON m.id = p.member_id
		ORDER BY p.created_at DESC, p.id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		var created int64
		if err := rows.Scan(&p.ID, &p.MemberID, &p.MemberName, &p.Message, &created); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.CreatedAt = fromMillis(created)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *SQLStore) GetPost(ctx context.Context, id string) (models.Post, error) {
	var p models.Post
	var created int64
	err := s.queryRow(ctx, `
		SELECT p.id, p.member_id, m.name, p.message, p.created_at
		FROM timeline p
		JOIN members m ON m.id = p.member_id
		WHERE p.id = ?
	`, id).Scan(&p.ID, &p.MemberID, &p.MemberName, &p.Message, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("get post: %w", err)
	}
	p.CreatedAt = fromMillis(created)
	return p, nil
}

func (s *SQLStore) CreatePost(ctx context.Context, memberID, message string) (models.Post, error) {
	m, err := s.GetMember(ctx, memberID)
	if err != nil {
		return models.Post{}, err
	}
	p := models.Post{
		ID:         newID(),
		MemberID:   memberID,
		MemberName: m.Name,
		Message:    message,
		CreatedAt:  fromMillis(toMillis(s.now())),
	}
	_, err = s.exec(ctx, `
		INSERT INTO timeline (id, member_id, message, created_at) VALUES (?, ?, ?, ?)
	`, p.ID, p.MemberID, p.Message, toMillis(p.CreatedAt))
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// DeletePost removes a post and its reactions.
func (s *SQLStore) DeletePost(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete post: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM timeline_reactions WHERE timeline_id = ?`), id); err != nil {
		return fmt.Errorf("delete reactions: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM timeline WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete post: %w", err)
	}
	return nil
}

func (s *SQLStore) ListReactions(ctx context.Context, postIDs []string) ([]models.Reaction, error) {
	if len(postIDs) == 0 {
		return []models.Reaction{}, nil
	}
	rows, err := s.query(ctx, `
		SELECT r.id, r.timeline_id, r.member_id, m.name, r.emoji, r.created_at
		FROM timeline_reactions r
		JOIN members m ON m.id = r.member_id
		WHERE r.timeline_id IN (`+placeholders(len(postIDs))+`)
		ORDER BY r.created_at, r.id
	`, stringArgs(postIDs)...)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	reactions := []models.Reaction{}
	for rows.Next() {
		var r models.Reaction
		var created int64
		if err := rows.Scan(&r.ID, &r.PostID, &r.MemberID, &r.MemberName, &r.Emoji, &created); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		r.CreatedAt = fromMillis(created)
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}

func (s *SQLStore) ToggleReaction(ctx context.Context, postID, memberID, emoji string) (bool, error) {
	res, err := s.exec(ctx, `
		DELETE FROM timeline_reactions WHERE timeline_id = ? AND member_id = ? AND emoji = ?
	`, postID, memberID, emoji)
	if err != nil {
		return false, fmt.Errorf("remove reaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove reaction rows affected: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	_, err = s.exec(ctx, `
		INSERT INTO timeline_reactions (id, timeline_id, member_id, emoji, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (timeline_id, member_id, emoji) DO NOTHING
	`, newID(), postID, memberID, emoji, toMillis(s.now()))
	if err != nil {
		return false, fmt.Errorf("add reaction: %w", err)
	}
	return true, nil
}
