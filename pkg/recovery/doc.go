/*
Package recovery invokes the external report generator.

The generator is an opaque Python project: a directory holding an entry-point
file and, optionally, a requirements.txt. On first use the invoker creates a
.venv next to the project and installs the declared dependencies, so the
tool's dependencies never conflict with the sentinel's own host environment.
Subsequent runs reuse the environment as-is.

One invocation, one Outcome. Failures are classified, logged, and contained:

  - skipped / missing-entrypoint: the entry point does not exist; nothing
    was attempted
  - failed / bootstrap: creating the venv or installing dependencies failed
  - failed / timeout: the configured execution ceiling was hit
  - failed / exit: the tool exited non-zero (stderr captured)
  - failed / interrupted: an external cancellation arrived mid-run
  - failed / internal: anything else

The caller decides nothing based on Reason beyond logging; retry is the
external scheduler's job via the next watchdog pass.
*/
package recovery
