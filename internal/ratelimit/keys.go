package ratelimit

import "fmt"

const (
	keySubscriptionActivation = "subscription:activation:%s"
	keySchedulerJob           = "scheduler:job:%s"
)

func sprintfKey(format, value string) string {
	return fmt.Sprintf(format, value)
}

// SubscriptionActivationKey is the lock key guarding activation of one subscription.
func SubscriptionActivationKey(subscriptionID string) string {
	return sprintfKey(keySubscriptionActivation, subscriptionID)
}

// SchedulerJobKey is the lock key held by the replica running a scheduler job.
func SchedulerJobKey(job string) string {
	return sprintfKey(keySchedulerJob, job)
}
