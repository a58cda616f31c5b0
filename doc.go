/*
Package duckdns updates Duck DNS records through the provider's plain
query-string update endpoint.

Usage will always start with [ResolveCredentials],
which gathers the domain list, account token, and optional IP address from
command-line values, environment variables, and config.json.
The resolved credentials are passed to [New],
and [Client.Update] performs the single update attempt for the run.
*/
package duckdns
