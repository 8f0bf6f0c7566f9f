package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"peersatpark/internal/database"
	"peersatpark/internal/models"
	"peersatpark/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string              `json:"version"`
	ExportedAt   time.Time           `json:"exported_at"`
	DatabaseType string              `json:"database_type"`
	Users        []models.User       `json:"users"`
	Kids         []models.Kid        `json:"kids"`
	Checkins     []models.Checkin    `json:"checkins"`
	KidCheckins  []models.KidCheckin `json:"kid_checkins"`
}

// ImportStats counts the rows restored by an import
type ImportStats struct {
	Users       int
	Kids        int
	Checkins    int
	KidCheckins int
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file. A failed
// export leaves no file behind.
func (s *BackupService) Export(ctx context.Context, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
		if err != nil {
			os.Remove(outputPath)
		}
	}()

	if err := s.ExportTo(ctx, file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportTo writes a complete backup as JSON
func (s *BackupService) ExportTo(ctx context.Context, w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect().DriverName(),
	}

	// One session gives the export a consistent connection
	err := s.db.WithSession(ctx, func(session *database.Session) error {
		var err error
		if backup.Users, err = repository.NewUserRepository(session).List(ctx); err != nil {
			return fmt.Errorf("failed to export users: %w", err)
		}
		if backup.Kids, err = repository.NewKidRepository(session).List(ctx); err != nil {
			return fmt.Errorf("failed to export kids: %w", err)
		}
		if backup.Checkins, err = repository.NewCheckinRepository(session).List(ctx); err != nil {
			return fmt.Errorf("failed to export checkins: %w", err)
		}
		if backup.KidCheckins, err = repository.NewKidCheckinRepository(session).List(ctx); err != nil {
			return fmt.Errorf("failed to export kid checkins: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d kids, %d checkins, %d kid checkins",
		len(backup.Users), len(backup.Kids), len(backup.Checkins), len(backup.KidCheckins))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) (*ImportStats, error) {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores a backup in one transaction. Rows receive new
// identifiers and every reference is remapped, so a backup can be merged
// into a database that already holds data.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) (*ImportStats, error) {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)
	if backup.Version != backupVersion {
		return nil, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	stats := &ImportStats{}
	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		userIDs := make(map[int64]int64, len(backup.Users))
		users := repository.NewUserRepository(tx)
		for _, u := range backup.Users {
			oldID := u.ID
			if err := users.Create(ctx, &u); err != nil {
				return fmt.Errorf("failed to import user %d: %w", oldID, err)
			}
			userIDs[oldID] = u.ID
			stats.Users++
		}

		kidIDs := make(map[int64]int64, len(backup.Kids))
		kids := repository.NewKidRepository(tx)
		for _, k := range backup.Kids {
			oldID := k.ID
			userID, ok := userIDs[k.UserID]
			if !ok {
				return fmt.Errorf("kid %d references unknown user %d", oldID, k.UserID)
			}
			k.UserID = userID
			if err := kids.Create(ctx, &k); err != nil {
				return fmt.Errorf("failed to import kid %d: %w", oldID, err)
			}
			kidIDs[oldID] = k.ID
			stats.Kids++
		}

		checkinIDs := make(map[int64]int64, len(backup.Checkins))
		checkins := repository.NewCheckinRepository(tx)
		for _, c := range backup.Checkins {
			oldID := c.ID
			userID, ok := userIDs[c.UserID]
			if !ok {
				return fmt.Errorf("checkin %d references unknown user %d", oldID, c.UserID)
			}
			c.UserID = userID
			if err := checkins.Create(ctx, &c); err != nil {
				return fmt.Errorf("failed to import checkin %d: %w", oldID, err)
			}
			checkinIDs[oldID] = c.ID
			stats.Checkins++
		}

		links := repository.NewKidCheckinRepository(tx)
		for _, kc := range backup.KidCheckins {
			oldID := kc.ID
			checkinID, ok := checkinIDs[kc.CheckinID]
			if !ok {
				return fmt.Errorf("kid checkin %d references unknown checkin %d", oldID, kc.CheckinID)
			}
			kidID, ok := kidIDs[kc.KidID]
			if !ok {
				return fmt.Errorf("kid checkin %d references unknown kid %d", oldID, kc.KidID)
			}
			kc.CheckinID, kc.KidID = checkinID, kidID
			if err := links.Create(ctx, &kc); err != nil {
				return fmt.Errorf("failed to import kid checkin %d: %w", oldID, err)
			}
			stats.KidCheckins++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Imported: %d users, %d kids, %d checkins, %d kid checkins",
		stats.Users, stats.Kids, stats.Checkins, stats.KidCheckins)
	return stats, nil
}
