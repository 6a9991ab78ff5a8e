// Package favorites loads the user's favorite module list from a
// shell-sourceable configuration file in the home directory.
package favorites
