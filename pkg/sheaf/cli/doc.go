// Package cli maps a sheaf.Config onto a command line made of an optional
// bare command and named sub-commands.
//
// Each command sees a surface: the options of the sections it uses, where an
// option name is owned by exactly one section. Sections listed later win;
// every losing candidate is reported as a ShadowWarning.
//
// Besides the usual --name and -s spellings, boolean switches accept
// +name/-name (and +s/-s) to set them to true or false.
package cli
