package hooks

// Script is the content of relocal-hook.sh, installed on the remote at
// ~/relocal/.bin/ by `relocal remote install`.
//
// The script takes a direction argument (push or pull), writes it to the
// session's request FIFO, then blocks reading the ack FIFO. The sidecar on
// the local side performs the sync and writes the ack. Timestamped events go
// to ~/relocal/.logs/<session>-<direction>.log via file descriptor 3 so that
// stdout/stderr stay clean for Claude.
const Script = `#!/bin/bash
set -euo pipefail

DIRECTION="${1:?Usage: relocal-hook.sh <push|pull>}"
FIFO_DIR="$HOME/relocal/.fifos"
LOG_DIR="$HOME/relocal/.logs"
REQUEST_FIFO="$FIFO_DIR/${RELOCAL_SESSION}-request"
ACK_FIFO="$FIFO_DIR/${RELOCAL_SESSION}-ack"

# Open log file (overwritten each invocation per direction)
mkdir -p "$LOG_DIR"
exec 3>"$LOG_DIR/${RELOCAL_SESSION}-${DIRECTION}.log"

echo "[$(date -Iseconds)] hook start: direction=$DIRECTION session=$RELOCAL_SESSION" >&3

# Send sync request (blocks until sidecar reads it)
echo "$DIRECTION" > "$REQUEST_FIFO"
echo "[$(date -Iseconds)] request sent, waiting for ack" >&3

# Wait for ack (blocks until sidecar writes response)
ACK=$(cat "$ACK_FIFO")

if [ "$ACK" = "ok" ]; then
    echo "[$(date -Iseconds)] ack received: ok" >&3
    exec 3>&-
    exit 0
else
    # Strip "error:" prefix if present
    MSG="${ACK#error:}"
    echo "[$(date -Iseconds)] ack received: error: $MSG" >&3
    exec 3>&-
    echo "$MSG" >&2
    exit 1
fi
`
