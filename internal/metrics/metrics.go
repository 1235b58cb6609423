package metrics

const Namespace = "backlog"
