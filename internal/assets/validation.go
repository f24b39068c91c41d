package assets

import "fmt"

// maxAssetNameLength bounds asset names; the built-in ones are far shorter.
const maxAssetNameLength = 64

// ValidateAssetName accepts names made of ASCII letters, digits, '-' and '_'.
// Anything else, including separators and dots, yields ErrInvalidAssetName,
// so a name can never leave its asset directory or pick its own extension.
func ValidateAssetName(name string) error {
	if name == "" || len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	for _, r := range name {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
