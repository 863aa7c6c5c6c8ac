// Package installpolicy decides whether environment-provisioning steps
// (installers) should run on the current launch.
//
// A Rule turns a LaunchContext into a Decision. Rules are pure apart from the
// group membership lookup, which is an injected capability and usually a
// blocking network call; apply a timeout at the provider, not here. Running the
// installers is the host's job.
package installpolicy
