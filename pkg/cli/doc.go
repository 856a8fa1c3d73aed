// Package cli implements the kubedrive command-line interface.
//
// # Overview
//
// kubedrive drives kubectl against a cluster target (kubeconfig, context and
// namespace) and prints every interaction as it happens: the command line
// that was issued, then each chunk of kubectl output tagged with the stream
// it arrived on. Manifest content is never printed.
//
// # Commands
//
// preflight - Verify a target before acting on it:
//
//	kubedrive preflight --context prod --namespace web [--deployment api] [--min-client-version 1.28]
//
// Checks, in order, that the kubeconfig is readable, that kubectl is recent
// enough, that the context exists, that its cluster answers, that the
// namespace exists and optionally that a deployment exists. The first
// failure skips the rest. Unknown contexts get suggestions.
//
// apply - Apply a manifest:
//
//	kubedrive apply -f deploy.yaml --context prod --namespace web [--deployment api]
//	helm template ./chart | kubedrive apply -f - --context prod --namespace web
//
// Runs preflight (unless --skip-preflight), applies the manifest through
// kubectl standard input and, with --deployment, waits for that rollout.
//
// rollout - Watch a deployment rollout:
//
//	kubedrive rollout --deployment api --context prod --namespace web [--timeout 5m]
//
// contexts - List kubeconfig contexts:
//
//	kubedrive contexts [--format json]
//
// # Global Flags
//
//	--kubeconfig     kubeconfig path (env KUBECONFIG, default ~/.kube/config)
//	--context        kubeconfig context (env KUBEDRIVE_CONTEXT, default current context)
//	--namespace, -n  namespace (env KUBEDRIVE_NAMESPACE, default from context or "default")
//	--kubectl        kubectl binary (env KUBEDRIVE_KUBECTL)
//	--format, -t     output format: table, json, yaml (default: table)
//	--log-level      debug, info, warn, error (env LOG_LEVEL)
//	--debug          shorthand for --log-level debug
//
// # Output
//
// Progress events are written to stdout, one per line in table format,
// as JSON lines, or as YAML documents. Logs are structured JSON on stderr.
//
// preflight accepts --output with a file path or a ConfigMap URI
// (cm://namespace/name) to store the report in the target cluster.
//
// # Exit Codes
//
// apply and rollout exit with kubectl's own exit code. preflight exits 1
// when a check fails. Usage errors and launch failures exit 1.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/kubedrive/pkg/cli.version=1.0.0'"
package cli
