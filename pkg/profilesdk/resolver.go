package profilesdk

// ResolveActiveProfile picks which profile a device should act as. Pure
// selection, no I/O; both pointers are optional ("" means absent).
//
// Precedence: the device's local pointer, then the server-persisted
// default pointer, then the first profile of the list (the caller passes
// the list most-recently-accessed first, so that is the most recently
// used one). A pointer naming a profile that is no longer in the list is
// ignored, not an error.
//
// Returns nil when the list is empty.
func ResolveActiveProfile(profiles []Profile, localPointer, serverPointer string) *Profile {
	if len(profiles) == 0 {
		return nil
	}

	byID := func(id string) *Profile {
		if id == "" {
			return nil
		}
		for i := range profiles {
			if profiles[i].ID == id {
				return &profiles[i]
			}
		}
		return nil
	}

	if p := byID(localPointer); p != nil {
		return p
	}
	if p := byID(serverPointer); p != nil {
		return p
	}
	return &profiles[0]
}
