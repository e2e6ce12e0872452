/*
Package session implements the session state store: the single source of truth
for the loaded dataset, the active filename, the derived pattern, the change
statistics of the last apply and the request status.

	+-----------+      Begin/Commit      +---------+
	|  ingest   | ---------------------> |         |
	+-----------+                        |  Store  | ---> Snapshot ---> render / tui
	+-----------+      Begin/Commit      |         |
	| transform | ---------------------> |         |
	+-----------+                        +---------+

🚦 Status cycle (per request):

	idle -> loading -> idle   (success)
	             \---> error  (failure, not terminal)

🎟️ Sequencing:
Begin hands out a Ticket with a monotonically increasing sequence number.
Commit only applies mutations for the latest ticket, so a slow response from
an older request can never overwrite the result of a newer one.

💾 Persistence:
Save and Open round-trip the snapshot as JSON so that separate CLI invocations
share one session.
*/
package session
