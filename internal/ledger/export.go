package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"forest-funds/internal/models"
)

// Snapshot is the downloadable copy of a user's data.
type Snapshot struct {
	User         *models.User         `json:"user"`
	Profile      models.Profile       `json:"profile"`
	Transactions []models.Transaction `json:"transactions"`
	ExportDate   time.Time            `json:"exportDate"`
}

// Export bundles the session user, the profile and the ledger.
func (s *Store) Export(user models.User) (Snapshot, error) {
	txs, err := s.Transactions(user.ID)
	if err != nil {
		return Snapshot{}, err
	}
	profile, err := s.Profile(user.ID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		User:         &user,
		Profile:      profile,
		Transactions: txs,
		ExportDate:   s.now().UTC(),
	}, nil
}

// ExportFileName names the export file after the user and the day of export.
func ExportFileName(name string, on time.Time) string {
	if name == "" {
		name = "user"
	}
	return fmt.Sprintf("forest-funds-%s-%s.json", name, on.UTC().Format(models.DateFormat))
}

// WriteJSON writes snap as indented JSON.
func WriteJSON(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// ReadSnapshot decodes a snapshot previously written by WriteJSON.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return snap, nil
}

// Import replaces the user's ledger with the transactions of snap. Every
// record is validated first and re-owned by userID; ids are kept, so an
// exported ledger imports back to the same records. Nothing is written if any
// record is rejected.
func (s *Store) Import(userID string, snap Snapshot) (int, error) {
	if userID == "" {
		return 0, invalid("user", "No user is logged in")
	}
	seen := make(map[string]bool, len(snap.Transactions))
	txs := make([]models.Transaction, 0, len(snap.Transactions))
	for i, tx := range snap.Transactions {
		err := ValidateDraft(models.Draft{
			Amount:      tx.Amount,
			Type:        tx.Type,
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date,
		})
		if err != nil {
			return 0, fmt.Errorf("transaction %d: %w", i, err)
		}
		if tx.ID == "" || seen[tx.ID] {
			return 0, fmt.Errorf("transaction %d: %w", i, invalid("id", "Missing or duplicate id"))
		}
		seen[tx.ID] = true
		tx.UserID = userID
		txs = append(txs, tx)
	}
	if err := s.save(userID, txs); err != nil {
		return 0, err
	}
	s.log.Printf("imported %d transactions for user %s", len(txs), userID)
	return len(txs), nil
}
