// Package service maps storage outcomes onto API results.
//
// Each operation makes one repository call and turns "absent" into a 404 or
// a storage failure into a 500 with a fixed message. ProjectService also
// announces created and removed projects to an ActivityNotifier.
package service
