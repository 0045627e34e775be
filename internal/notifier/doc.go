// Package notifier announces newly scheduled matches.
//
// TwitterNotifier posts through the v1.1 statuses API using OAuth1 user
// credentials taken from the environment. DryRunNotifier writes the same
// tweet text to a writer so announcements can be previewed in CI logs.
package notifier
