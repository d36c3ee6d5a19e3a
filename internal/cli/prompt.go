package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/disklink/disklink/internal/catalog"
)

// promptPermanence asks whether a delete should go to trash or be
// permanent.
func promptPermanence() (bool, error) {
	sel := promptui.Select{
		Label: "Delete mode",
		Items: []string{"Move to trash (recoverable)", "Delete permanently"},
	}

	idx, _, err := sel.Run()
	if err != nil {
		return false, fmt.Errorf("delete cancelled: %w", err)
	}
	return idx == 1, nil
}

// confirmDelete asks for a final yes/no before deleting. Returns false
// without error when the user declines.
func confirmDelete(paths []string, permanent bool) (bool, error) {
	mode := "trash"
	if permanent {
		mode = "PERMANENT"
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Delete %d object(s) [%s]: %s", len(paths), mode, strings.Join(paths, ", ")),
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// promptParentFolder lets the user pick an existing remote folder as the
// parent for a new one. The disk root is always offered first.
func promptParentFolder(snap *catalog.Snapshot) (string, error) {
	items := []string{"/"}
	for i := range snap.Folders {
		items = append(items, snap.Folders[i].Path)
	}

	sel := promptui.Select{
		Label:             "Parent folder",
		Items:             items,
		Size:              15,
		StartInSearchMode: len(items) > 15,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}

	_, choice, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("folder selection cancelled: %w", err)
	}
	return choice, nil
}

// promptToken reads a token without echoing it.
func promptToken() (string, error) {
	prompt := promptui.Prompt{
		Label: "OAuth token",
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("token must not be empty")
			}
			return nil
		},
	}
	return prompt.Run()
}
