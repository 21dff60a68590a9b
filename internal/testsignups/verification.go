package testsignups

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// verifyResults verifies the consistency of rosters and the audit trail.
func verifyResults(ctx context.Context, config *Config, signups []Signup, rosters map[string]ActivityDetails, audit []RosterChange, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(rosters) == 0 {
		return fmt.Errorf("no rosters to verify")
	}

	// Verify every submitted signup landed on its roster
	if err := verifyRosterMembership(signups, rosters, stats); err != nil {
		log.Printf("⚠️  Roster membership warning: %v", err)
	} else {
		log.Println("✅ Roster membership verified")
	}

	// Verify no roster lists the same student twice
	if err := verifyRosterUniqueness(rosters); err != nil {
		log.Printf("⚠️  Roster uniqueness warning: %v", err)
	} else {
		log.Println("✅ Roster uniqueness verified")
	}

	// Verify the audit trail is ordered newest first
	if len(audit) > 0 {
		if err := verifyAuditOrdering(audit); err != nil {
			log.Printf("⚠️  Audit ordering warning: %v", err)
		} else {
			log.Println("✅ Audit ordering verified")
		}
	}

	// Display roster summary
	displayRosterSummary(rosters, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// verifyRosterMembership checks that every generated signup shows up on the
// roster of its activity. Signups whose submission failed outright are
// allowed to be absent; conflicted duplicates share a roster entry with the
// signup they repeated.
func verifyRosterMembership(signups []Signup, rosters map[string]ActivityDetails, stats *Stats) error {
	enrolled := make(map[string]map[string]bool, len(rosters))
	for name, details := range rosters {
		emails := make(map[string]bool, len(details.Participants))
		for _, email := range details.Participants {
			emails[email] = true
		}
		enrolled[name] = emails
	}

	missing := 0
	for _, signup := range signups {
		if !enrolled[signup.Activity][signup.Email] {
			missing++
		}
	}

	if missing > stats.SignupsFailed {
		return fmt.Errorf("%d signups missing from rosters but only %d submissions failed", missing, stats.SignupsFailed)
	}

	return nil
}

// verifyRosterUniqueness checks that no roster lists the same student twice.
func verifyRosterUniqueness(rosters map[string]ActivityDetails) error {
	for name, details := range rosters {
		seen := make(map[string]bool, len(details.Participants))
		for _, email := range details.Participants {
			if seen[email] {
				return fmt.Errorf("activity %q lists %s more than once", name, email)
			}
			seen[email] = true
		}
	}

	return nil
}

// verifyAuditOrdering checks that the audit trail is ordered newest first
// and only carries known actions.
func verifyAuditOrdering(audit []RosterChange) error {
	for i := 1; i < len(audit); i++ {
		if audit[i].At.After(audit[i-1].At) {
			return fmt.Errorf("audit trail not ordered newest first: entry %d is newer than entry %d", i, i-1)
		}
	}

	for i, change := range audit {
		if change.Action != "signup" && change.Action != "unregister" {
			return fmt.Errorf("audit entry %d has unknown action %q", i, change.Action)
		}
	}

	return nil
}

// displayRosterSummary shows how full each activity is.
func displayRosterSummary(rosters map[string]ActivityDetails, verbose bool) {
	names := make([]string, 0, len(rosters))
	for name := range rosters {
		names = append(names, name)
	}
	sort.Strings(names)

	log.Printf("📋 Roster summary for %d activities:", len(names))
	for _, name := range names {
		details := rosters[name]
		utilization := 0.0
		if details.MaxParticipants > 0 {
			utilization = float64(len(details.Participants)) / float64(details.MaxParticipants) * PercentageMultiplier
		}
		log.Printf("   %s - %d/%d enrolled (%.1f%%)", name, len(details.Participants), details.MaxParticipants, utilization)
	}

	if verbose {
		totalEnrolled := 0
		totalCapacity := 0
		for _, details := range rosters {
			totalEnrolled += len(details.Participants)
			totalCapacity += details.MaxParticipants
		}

		overall := 0.0
		if totalCapacity > 0 {
			overall = float64(totalEnrolled) / float64(totalCapacity) * PercentageMultiplier
		}

		log.Printf(`📊 Enrollment statistics:
   Enrolled: %d
   Capacity: %d
   Utilization: %.1f%%
`, totalEnrolled, totalCapacity, overall)
	}
}
