package sem

// Context records the substitute expression chosen for each parameter object
// during a single rule application.  The type comparator resolves atomic type
// references through it, and the matcher extends it temporarily while walking
// under binders.
type Context map[Object]Expression
