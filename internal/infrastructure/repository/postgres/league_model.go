package postgres

import (
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/efantasy/league-service/internal/domain/league"
)

var leagueColumns = []string{
	"id",
	"name",
	"admin_id",
	"max_teams",
	"is_public",
	"draft_time",
	"scoring_type",
	"participants",
	"draft_order",
	"created_at",
	"updated_at",
}

var invitationColumns = []string{
	"id",
	"league_id",
	"invitee_id",
	"inviter_id",
	"status",
	"created_at",
	"updated_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

type leagueTableModel struct {
	ID           int64         `db:"id"`
	Name         string        `db:"name"`
	AdminID      int64         `db:"admin_id"`
	MaxTeams     int           `db:"max_teams"`
	IsPublic     bool          `db:"is_public"`
	DraftTime    time.Time     `db:"draft_time"`
	ScoringType  string        `db:"scoring_type"`
	Participants pq.Int64Array `db:"participants"`
	DraftOrder   pq.Int64Array `db:"draft_order"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type leagueInsertModel struct {
	Name         string        `db:"name"`
	AdminID      int64         `db:"admin_id"`
	MaxTeams     int           `db:"max_teams"`
	IsPublic     bool          `db:"is_public"`
	DraftTime    time.Time     `db:"draft_time"`
	ScoringType  string        `db:"scoring_type"`
	Participants pq.Int64Array `db:"participants"`
	DraftOrder   pq.Int64Array `db:"draft_order"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type invitationTableModel struct {
	ID        int64     `db:"id"`
	LeagueID  int64     `db:"league_id"`
	InviteeID int64     `db:"invitee_id"`
	InviterID int64     `db:"inviter_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type invitationInsertModel struct {
	LeagueID  int64     `db:"league_id"`
	InviteeID int64     `db:"invitee_id"`
	InviterID int64     `db:"inviter_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func leagueInsertFromDomain(item league.League) leagueInsertModel {
	return leagueInsertModel{
		Name:         item.Name,
		AdminID:      item.AdminID,
		MaxTeams:     item.MaxTeams,
		IsPublic:     item.IsPublic,
		DraftTime:    item.DraftTime.UTC(),
		ScoringType:  item.ScoringType,
		Participants: pq.Int64Array(item.Participants),
		DraftOrder:   pq.Int64Array(item.DraftOrder),
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func leagueFromRow(row leagueTableModel) league.League {
	out := league.League{
		ID:           row.ID,
		Name:         row.Name,
		AdminID:      row.AdminID,
		MaxTeams:     row.MaxTeams,
		IsPublic:     row.IsPublic,
		DraftTime:    row.DraftTime.UTC(),
		ScoringType:  row.ScoringType,
		Participants: []int64(row.Participants),
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
	if row.DraftOrder != nil {
		out.DraftOrder = []int64(row.DraftOrder)
	}
	if out.Participants == nil {
		out.Participants = []int64{}
	}
	return out
}

func leaguesFromRows(rows []leagueTableModel) []league.League {
	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out
}

func invitationInsertFromDomain(item league.Invitation) invitationInsertModel {
	return invitationInsertModel{
		LeagueID:  item.LeagueID,
		InviteeID: item.InviteeID,
		InviterID: item.InviterID,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func invitationFromRow(row invitationTableModel) league.Invitation {
	return league.Invitation{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		InviteeID: row.InviteeID,
		InviterID: row.InviterID,
		Status:    league.InvitationStatus(row.Status),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
