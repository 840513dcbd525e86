package planner

import (
	"sort"
	"time"

	"github.com/arthur-debert/photosnap/pkg/errors"
	"github.com/arthur-debert/photosnap/pkg/logging"
	"github.com/arthur-debert/photosnap/pkg/types"
)

// Recent is the base reference selecting the latest snapshot folder
const Recent = "RECENT"

// SnapshotFolder is a folder of the parent root whose name parses as a
// snapshot timestamp
type SnapshotFolder struct {
	Name string
	Time time.Time
}

// ListSnapshots returns the parseable snapshot folders directly under
// parent, oldest first. Folders that do not parse are skipped.
func ListSnapshots(fs types.FS, parent, layout string) ([]SnapshotFolder, error) {
	logger := logging.GetLogger("planner")

	entries, err := fs.ReadDir(parent)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidParent, "unable to read parent folder %s", parent)
	}

	var folders []SnapshotFolder
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t, err := ParseFolderTime(layout, entry.Name())
		if err != nil {
			logger.Debug().Str("folder", entry.Name()).Msg("unable to parse snapshot date")
			continue
		}
		folders = append(folders, SnapshotFolder{Name: entry.Name(), Time: t})
	}

	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Time.Equal(folders[j].Time) {
			return folders[i].Name < folders[j].Name
		}
		return folders[i].Time.Before(folders[j].Time)
	})
	return folders, nil
}

// FindMostRecent returns the latest snapshot folder under parent.
func FindMostRecent(fs types.FS, parent, layout string) (SnapshotFolder, error) {
	folders, err := ListSnapshots(fs, parent, layout)
	if err != nil {
		return SnapshotFolder{}, err
	}
	if len(folders) == 0 {
		return SnapshotFolder{}, errors.Newf(errors.ErrNoSnapshots, "unable to find a recent snapshot in %s", parent)
	}
	latest := folders[len(folders)-1]
	logger := logging.GetLogger("planner")
	logger.Info().
		Str("folder", latest.Name).
		Time("date", latest.Time).
		Msg("latest snapshot")
	return latest, nil
}
