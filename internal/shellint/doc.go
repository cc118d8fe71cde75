// Package shellint registers the application in the OS file manager so a
// folder can be opened in it from the right-click menu.
//
// [New] picks one strategy from the platform family:
//
//   - Windows: two registry trees under HKEY_CURRENT_USER, one for folders
//     and one for the folder background, written through a [KeyStore]
//   - Linux: a desktop entry in ~/.local/share/applications, followed by a
//     best-effort update-desktop-database
//   - anything else: unsupported, and SetInstalled fails with
//     errors.ErrNotSupported plus a hint
//
// Registration state is read from the OS on every call and never cached.
// A failed Windows install removes whatever it wrote before returning.
package shellint
