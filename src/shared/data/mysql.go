package data

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/quorumdao/govproposals/src/shared/gov"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(&ProposalRow{}, &BallotRow{}); err != nil {
		log.Fatalf("mysql migrate: %v", err)
	}
	return db
}

// ProposalRow is the persisted form of one proposal. Rows are written in id
// order so id density and creation order survive a round trip.
type ProposalRow struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement:false"`
	Author      string `gorm:"size:128;index;not null"`
	YesVotes    uint32 `gorm:"not null"`
	NoVotes     uint32 `gorm:"not null"`
	CreatedAt   time.Time
	Deadline    time.Time
	Active      bool
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:200;not null"`
	DetailsHash string `gorm:"size:66;not null"`
}

func (ProposalRow) TableName() string { return "proposals" }

// BallotRow is the persisted form of one ballot, keyed by (proposal, voter).
type BallotRow struct {
	ProposalID uint64 `gorm:"primaryKey;autoIncrement:false"`
	Voter      string `gorm:"primaryKey;size:128"`
	Choice     bool
}

func (BallotRow) TableName() string { return "ballots" }

func toProposalRow(p gov.Proposal) ProposalRow {
	return ProposalRow{
		ID:          p.ID,
		Author:      p.Author,
		YesVotes:    p.YesVotes,
		NoVotes:     p.NoVotes,
		CreatedAt:   p.CreatedAt,
		Deadline:    p.Deadline,
		Active:      p.Active,
		Title:       p.Title,
		Description: p.Description,
		DetailsHash: p.DetailsHash.Hex(),
	}
}

func fromProposalRow(r ProposalRow) (gov.Proposal, error) {
	hash, err := gov.ParseDetailsHash(r.DetailsHash)
	if err != nil {
		return gov.Proposal{}, fmt.Errorf("proposal %d: %w", r.ID, err)
	}
	return gov.Proposal{
		ID:          r.ID,
		Author:      r.Author,
		YesVotes:    r.YesVotes,
		NoVotes:     r.NoVotes,
		CreatedAt:   r.CreatedAt,
		Deadline:    r.Deadline,
		Active:      r.Active,
		Title:       r.Title,
		Description: r.Description,
		DetailsHash: hash,
	}, nil
}

// SaveState replaces the persisted snapshot with the given store state in one
// transaction.
func SaveState(db *gorm.DB, st gov.State) error {
	rows := make([]ProposalRow, len(st.Proposals))
	for i, p := range st.Proposals {
		rows[i] = toProposalRow(p)
	}
	ballots := make([]BallotRow, len(st.Ballots))
	for i, b := range st.Ballots {
		ballots[i] = BallotRow{ProposalID: b.ProposalID, Voter: b.Voter, Choice: b.Choice}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&BallotRow{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ProposalRow{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return err
			}
		}
		if len(ballots) > 0 {
			if err := tx.CreateInBatches(ballots, 500).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadState reads the persisted snapshot back into exportable store state.
func LoadState(db *gorm.DB) (gov.State, error) {
	var rows []ProposalRow
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return gov.State{}, err
	}
	var ballots []BallotRow
	if err := db.Find(&ballots).Error; err != nil {
		return gov.State{}, err
	}

	st := gov.State{Proposals: make([]gov.Proposal, len(rows))}
	for i, r := range rows {
		p, err := fromProposalRow(r)
		if err != nil {
			return gov.State{}, err
		}
		st.Proposals[i] = p
	}
	st.Ballots = make([]gov.BallotRecord, len(ballots))
	for i, b := range ballots {
		st.Ballots[i] = gov.BallotRecord{ProposalID: b.ProposalID, Voter: b.Voter, Choice: b.Choice}
	}
	return st, nil
}
