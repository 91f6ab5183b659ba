/*
Package sentinel orchestrates one watchdog pass over the report directories.

# State Machine

A pass moves through at most four states:

	CHECKING ──(all directories ok)──────────────────▶ DONE
	CHECKING ──(first missing report)──▶ ALERTING ──▶ RECOVERING ──▶ DONE

The pass is deliberately single-shot: it visits at most one directory's
alert/recovery path, then returns and leaves the rest of the list unexamined.
Retrying, and checking the directories after the first miss, is the external
scheduler's responsibility on the next pass. Converting this to
check-all-and-report-all would change the operator contract and is not done
here.

The pass is fully sequential with blocking I/O throughout: filesystem stat
per directory, one SMTP delivery, one child process. A failed email send
propagates only as far as the pass's own top-level handler, which logs it
critical and ends the pass; a failed recovery does not even do that, it is
contained in the Outcome. The process exits zero in every one of these
cases, so the scheduler never sees a distinguished failure status.
*/
package sentinel
